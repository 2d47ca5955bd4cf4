package properties

import (
	"context"
	"errors"
	"strings"

	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/deelmap/admin-backend/pkg/enums"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/deelmap/admin-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service manages admin-facing property listings.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Property, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type service struct {
	repo Repository
}

// NewService wires property dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "properties repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Property, error) {
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}

	status := enums.ListingStatusDraft
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := enums.ParseListingStatus(input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		status = parsed
	}

	property := &models.Property{
		SellerID:       input.SellerID,
		Address:        address,
		City:           strings.TrimSpace(input.City),
		State:          strings.TrimSpace(input.State),
		ZipCode:        strings.TrimSpace(input.ZipCode),
		Price:          input.Price,
		Bedrooms:       input.Bedrooms,
		Bathrooms:      input.Bathrooms,
		Sqft:           input.Sqft,
		Description:    input.Description,
		Repairs:        input.Repairs,
		Status:         status,
		PropertyStatus: enums.PropertyStatusAvailable,
		Images:         imagesFromURLs(uuid.Nil, input.ImageURLs),
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create property")
	}
	return property, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find property")
	}
	return property, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Status != "" {
		if _, err := enums.ParseListingStatus(params.Status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}
	if params.PropertyStatus != "" {
		if _, err := enums.ParsePropertyStatus(params.PropertyStatus); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}

	cursor, err := pagination.ParseCursor(params.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	limit := pagination.NormalizeLimit(params.Page.Limit)
	properties, err := s.repo.List(ctx, listFilter{
		Status:         params.Status,
		PropertyStatus: params.PropertyStatus,
		City:           strings.TrimSpace(params.City),
		Search:         strings.TrimSpace(params.Search),
	}, cursor, pagination.LimitWithBuffer(params.Page.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list properties")
	}

	result := &ListResult{Properties: properties}
	if len(properties) > limit {
		result.Properties = properties[:limit]
		last := result.Properties[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Address != nil {
		address := strings.TrimSpace(*input.Address)
		if address == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "address cannot be empty")
		}
		property.Address = address
	}
	if input.SellerID != nil {
		property.SellerID = input.SellerID
	}
	if input.City != nil {
		property.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		property.State = strings.TrimSpace(*input.State)
	}
	if input.ZipCode != nil {
		property.ZipCode = strings.TrimSpace(*input.ZipCode)
	}
	if input.Price != nil {
		property.Price = input.Price
	}
	if input.Bedrooms != nil {
		property.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		property.Bathrooms = input.Bathrooms
	}
	if input.Sqft != nil {
		property.Sqft = *input.Sqft
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Repairs != nil {
		property.Repairs = *input.Repairs
	}
	if input.Status != nil {
		status, err := enums.ParseListingStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		property.Status = status
	}
	if input.PropertyStatus != nil {
		status, err := enums.ParsePropertyStatus(*input.PropertyStatus)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		property.PropertyStatus = status
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update property")
	}

	if input.ImageURLs != nil {
		images := imagesFromURLs(property.ID, *input.ImageURLs)
		if err := s.repo.ReplaceImages(ctx, property.ID, images); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace property images")
		}
		property.Images = images
	}

	return property, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete property")
	}
	return nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dashboard stats")
	}
	return stats, nil
}

func imagesFromURLs(propertyID uuid.UUID, urls []string) []models.PropertyImage {
	var images []models.PropertyImage
	order := 0
	for _, url := range urls {
		trimmed := strings.TrimSpace(url)
		if trimmed == "" {
			continue
		}
		image := models.PropertyImage{ImageURL: trimmed, SortOrder: order}
		if propertyID != uuid.Nil {
			image.PropertyID = propertyID
		}
		images = append(images, image)
		order++
	}
	return images
}
