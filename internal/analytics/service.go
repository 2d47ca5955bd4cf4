package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/deelmap/admin-backend/pkg/config"
	"github.com/deelmap/admin-backend/pkg/db/models"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
)

// Service defines analytics read operations for the dashboard.
type Service interface {
	Summary(ctx context.Context, params SummaryParams) ([]PropertySummary, error)
	PropertyDetail(ctx context.Context, propertyID string) ([]models.PropertyView, error)
	NotificationHistory(ctx context.Context) ([]models.NotificationHistory, error)
}

type service struct {
	repo Repository
	cfg  config.AnalyticsConfig
}

// SummaryParams narrows the event window folded into the summary.
type SummaryParams struct {
	PropertyID string
	StartDate  *time.Time
	EndDate    *time.Time
}

// NewService wires analytics dependencies.
func NewService(repo Repository, cfg config.AnalyticsConfig) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "analytics repository required")
	}
	if cfg.SummaryRowLimit <= 0 {
		cfg.SummaryRowLimit = 1000
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 100
	}
	return &service{repo: repo, cfg: cfg}, nil
}

func (s *service) Summary(ctx context.Context, params SummaryParams) ([]PropertySummary, error) {
	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "endDate must not precede startDate")
	}

	views, err := s.repo.ListViews(ctx, listViewsParams{
		PropertyID: strings.TrimSpace(params.PropertyID),
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Limit:      s.cfg.SummaryRowLimit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list property views")
	}

	return Summarize(views), nil
}

func (s *service) PropertyDetail(ctx context.Context, propertyID string) ([]models.PropertyView, error) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "propertyId is required")
	}

	views, err := s.repo.ListViewsForProperty(ctx, propertyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list property detail")
	}
	return views, nil
}

func (s *service) NotificationHistory(ctx context.Context) ([]models.NotificationHistory, error) {
	history, err := s.repo.ListNotificationHistory(ctx, s.cfg.HistoryLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notification history")
	}
	return history, nil
}
