package scraped

import (
	"context"
	"errors"
	"strings"

	"github.com/deelmap/admin-backend/pkg/db/models"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/deelmap/admin-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListParams filters the scraped-deal review queue.
type ListParams struct {
	SourceType string
	Search     string
	Page       pagination.Params
}

// ListResult is one page of scraped deals.
type ListResult struct {
	Deals      []models.ScrapedProperty `json:"deals"`
	NextCursor string                   `json:"next_cursor,omitempty"`
}

// Service exposes review operations over ingested wholesale deals.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.ScrapedProperty, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires scraped-review dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "scraped repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.ScrapedProperty, error) {
	deal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "scraped property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find scraped property")
	}
	return deal, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	limit := pagination.NormalizeLimit(params.Page.Limit)
	deals, err := s.repo.List(ctx, listFilter{
		SourceType: strings.TrimSpace(params.SourceType),
		Search:     strings.TrimSpace(params.Search),
	}, cursor, pagination.LimitWithBuffer(params.Page.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list scraped properties")
	}

	result := &ListResult{Deals: deals}
	if len(deals) > limit {
		result.Deals = deals[:limit]
		last := result.Deals[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "scraped property not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete scraped property")
	}
	return nil
}
