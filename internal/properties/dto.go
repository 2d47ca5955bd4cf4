package properties

import (
	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/deelmap/admin-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput is the admin listing creation payload.
type CreateInput struct {
	SellerID    *uuid.UUID       `json:"seller_id"`
	Address     string           `json:"address" validate:"required"`
	City        string           `json:"city"`
	State       string           `json:"state"`
	ZipCode     string           `json:"zip_code"`
	Price       *decimal.Decimal `json:"price"`
	Bedrooms    int              `json:"bedrooms" validate:"gte=0"`
	Bathrooms   *decimal.Decimal `json:"bathrooms"`
	Sqft        int              `json:"sqft" validate:"gte=0"`
	Description string           `json:"description"`
	Repairs     string           `json:"repairs"`
	Status      string           `json:"status"`
	ImageURLs   []string         `json:"image_urls"`
}

// UpdateInput carries a partial listing edit. Nil fields keep their stored
// values.
type UpdateInput struct {
	SellerID       *uuid.UUID       `json:"seller_id"`
	Address        *string          `json:"address"`
	City           *string          `json:"city"`
	State          *string          `json:"state"`
	ZipCode        *string          `json:"zip_code"`
	Price          *decimal.Decimal `json:"price"`
	Bedrooms       *int             `json:"bedrooms"`
	Bathrooms      *decimal.Decimal `json:"bathrooms"`
	Sqft           *int             `json:"sqft"`
	Description    *string          `json:"description"`
	Repairs        *string          `json:"repairs"`
	Status         *string          `json:"status"`
	PropertyStatus *string          `json:"property_status"`
	ImageURLs      *[]string        `json:"image_urls"`
}

// ListParams filters the admin property table.
type ListParams struct {
	Status         string
	PropertyStatus string
	City           string
	Search         string
	Page           pagination.Params
}

// ListResult is one page of properties.
type ListResult struct {
	Properties []models.Property `json:"properties"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// DashboardStats summarizes the portfolio for the admin home view.
type DashboardStats struct {
	TotalProperties     int64           `json:"total_properties"`
	PublishedProperties int64           `json:"published_properties"`
	DraftProperties     int64           `json:"draft_properties"`
	SoldProperties      int64           `json:"sold_properties"`
	UnderContract       int64           `json:"under_contract"`
	TotalPortfolioValue decimal.Decimal `json:"total_portfolio_value"`
	AveragePrice        decimal.Decimal `json:"average_price"`
}
