package applications

import (
	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/deelmap/admin-backend/pkg/pagination"
)

// SubmitInput is the public intake form payload.
type SubmitInput struct {
	BusinessName      string  `json:"business_name" validate:"required"`
	ContactPersonName string  `json:"contact_person_name" validate:"required"`
	Email             string  `json:"email" validate:"required,email"`
	Phone             string  `json:"phone"`
	BusinessType      string  `json:"business_type"`
	DealsPerMonth     string  `json:"deals_per_month"`
	PrimaryMarkets    string  `json:"primary_markets"`
	PropertyTypes     string  `json:"property_types"`
	Website           *string `json:"website"`
	Linkedin          *string `json:"linkedin"`
	Description       *string `json:"description"`
}

// SubmitResult reports the stored application and whether intake
// auto-approved it.
type SubmitResult struct {
	Application  *models.SellerApplication `json:"application"`
	AutoApproved bool                      `json:"auto_approved"`
}

// StatusUpdateInput moves an application to a non-approved status.
type StatusUpdateInput struct {
	Status string `json:"status" validate:"required"`
}

// ApproveInput optionally overrides the generated credential.
type ApproveInput struct {
	Password *string `json:"password"`
}

// ApproveResult carries the issued credential and the provider email id when
// the credentials email went out.
type ApproveResult struct {
	Application *models.SellerApplication `json:"application"`
	Password    string                    `json:"password"`
	EmailID     string                    `json:"email_id,omitempty"`
}

// ListParams filters the admin application queue.
type ListParams struct {
	Status string
	Page   pagination.Params
}

// ListResult is one page of applications.
type ListResult struct {
	Applications []models.SellerApplication `json:"applications"`
	NextCursor   string                     `json:"next_cursor,omitempty"`
}
