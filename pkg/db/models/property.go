package models

import (
	"time"

	"github.com/deelmap/admin-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Property is an admin-managed listing.
type Property struct {
	ID             uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SellerID       *uuid.UUID           `gorm:"type:uuid;column:seller_id" json:"seller_id"`
	Address        string               `gorm:"type:text;not null" json:"address"`
	City           string               `gorm:"type:text" json:"city"`
	State          string               `gorm:"type:text" json:"state"`
	ZipCode        string               `gorm:"column:zip_code" json:"zip_code"`
	Price          *decimal.Decimal     `gorm:"type:numeric(14,2)" json:"price"`
	Bedrooms       int                  `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms      *decimal.Decimal     `gorm:"type:numeric(4,1);column:bathrooms" json:"bathrooms"`
	Sqft           int                  `gorm:"column:sqft" json:"sqft"`
	Description    string               `gorm:"type:text" json:"description"`
	Repairs        string               `gorm:"type:text" json:"repairs"`
	Status         enums.ListingStatus  `gorm:"type:text;not null;default:draft" json:"status"`
	PropertyStatus enums.PropertyStatus `gorm:"type:text;column:property_status;not null;default:available" json:"property_status"`
	Images         []PropertyImage      `gorm:"foreignKey:PropertyID" json:"property_images,omitempty"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// PropertyImage is an ordered listing photo.
type PropertyImage struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;column:property_id;not null;index" json:"property_id"`
	ImageURL   string    `gorm:"column:image_url;not null" json:"image_url"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
