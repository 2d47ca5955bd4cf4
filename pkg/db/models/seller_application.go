package models

import (
	"time"

	"github.com/deelmap/admin-backend/pkg/enums"
	"github.com/google/uuid"
)

// SellerApplication is one seller onboarding submission.
type SellerApplication struct {
	ID                uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessName      string                  `gorm:"column:business_name;not null" json:"business_name"`
	ContactPersonName string                  `gorm:"column:contact_person_name;not null" json:"contact_person_name"`
	Email             string                  `gorm:"type:text;not null" json:"email"`
	Phone             string                  `gorm:"type:text" json:"phone"`
	BusinessType      string                  `gorm:"column:business_type" json:"business_type"`
	DealsPerMonth     string                  `gorm:"column:deals_per_month" json:"deals_per_month"`
	PrimaryMarkets    string                  `gorm:"column:primary_markets" json:"primary_markets"`
	PropertyTypes     string                  `gorm:"column:property_types" json:"property_types"`
	Website           *string                 `gorm:"column:website" json:"website"`
	Linkedin          *string                 `gorm:"column:linkedin" json:"linkedin"`
	Description       *string                 `gorm:"type:text" json:"description"`
	Status            enums.ApplicationStatus `gorm:"type:text;not null;default:pending" json:"status"`
	Password          *string                 `gorm:"type:text" json:"password,omitempty"`
	ReviewedAt        *time.Time              `gorm:"column:reviewed_at" json:"reviewed_at"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// ApplicationEvent is an append-only audit row for a seller application.
// Status transitions and credentials-email attempts both land here so a
// failed send stays inspectable without rolling back the transition.
type ApplicationEvent struct {
	ID            uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ApplicationID uuid.UUID                `gorm:"type:uuid;column:application_id;not null;index" json:"application_id"`
	FromStatus    *enums.ApplicationStatus `gorm:"type:text;column:from_status" json:"from_status"`
	ToStatus      enums.ApplicationStatus  `gorm:"type:text;column:to_status;not null" json:"to_status"`
	EmailStatus   *enums.EmailStatus       `gorm:"type:text;column:email_status" json:"email_status"`
	EmailError    *string                  `gorm:"column:email_error" json:"email_error"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
