package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScrapedProperty is an ingested wholesale deal awaiting review.
type ScrapedProperty struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Address      string           `gorm:"type:text" json:"address"`
	City         string           `gorm:"type:text" json:"city"`
	State        string           `gorm:"type:text" json:"state"`
	ZipCode      string           `gorm:"column:zip_code" json:"zip_code"`
	FullAddress  string           `gorm:"column:full_address" json:"full_address"`
	Price        *decimal.Decimal `gorm:"type:numeric(14,2)" json:"price"`
	Bedrooms     int              `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms    *decimal.Decimal `gorm:"type:numeric(4,1);column:bathrooms" json:"bathrooms"`
	Sqft         int              `gorm:"column:sqft" json:"sqft"`
	PropertyType string           `gorm:"column:property_type" json:"property_type"`
	Status       string           `gorm:"type:text" json:"status"`
	AgentName    string           `gorm:"column:agent_name" json:"agent_name"`
	AgentPhone   string           `gorm:"column:agent_phone" json:"agent_phone"`
	AgentEmail   string           `gorm:"column:agent_email" json:"agent_email"`
	Description  string           `gorm:"type:text" json:"description"`
	SourceType   string           `gorm:"column:source_type" json:"source_type"`
	Photos       []ScrapedPhoto   `gorm:"foreignKey:DealID" json:"photos,omitempty"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName keeps the scraper's historical table name.
func (ScrapedProperty) TableName() string {
	return "wholesale_deals"
}

// ScrapedPhoto is a photo attached to a scraped deal.
type ScrapedPhoto struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DealID       uuid.UUID `gorm:"type:uuid;column:deal_id;not null;index" json:"deal_id"`
	PhotoURL     string    `gorm:"column:photo_url;not null" json:"photo_url"`
	IsFeatured   bool      `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName keeps the scraper's historical table name.
func (ScrapedPhoto) TableName() string {
	return "property_photos"
}
