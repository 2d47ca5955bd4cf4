package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deelmap/admin-backend/pkg/config"
	"github.com/deelmap/admin-backend/pkg/db/models"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubAnalyticsRepo struct {
	views      []models.PropertyView
	history    []models.NotificationHistory
	err        error
	lastParams listViewsParams
	lastLimit  int
}

func (s *stubAnalyticsRepo) ListViews(_ context.Context, params listViewsParams) ([]models.PropertyView, error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return s.views, nil
}

func (s *stubAnalyticsRepo) ListViewsForProperty(_ context.Context, propertyID string) ([]models.PropertyView, error) {
	s.lastParams = listViewsParams{PropertyID: propertyID}
	if s.err != nil {
		return nil, s.err
	}
	return s.views, nil
}

func (s *stubAnalyticsRepo) ListNotificationHistory(_ context.Context, limit int) ([]models.NotificationHistory, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.history, nil
}

func (s *stubAnalyticsRepo) DeleteViewsBefore(context.Context, *gorm.DB, time.Time) (int64, error) {
	return 0, nil
}

func (s *stubAnalyticsRepo) DeleteHistoryBefore(context.Context, *gorm.DB, time.Time) (int64, error) {
	return 0, nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, config.AnalyticsConfig{SummaryRowLimit: 500, HistoryLimit: 50})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := NewService(nil, config.AnalyticsConfig{}); err == nil {
		t.Fatal("expected error for nil repository")
	}
}

func TestSummaryPassesFiltersToRepo(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	svc := newTestService(t, repo)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	_, err := svc.Summary(context.Background(), SummaryParams{
		PropertyID: "  prop-1  ",
		StartDate:  &start,
		EndDate:    &end,
	})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if repo.lastParams.PropertyID != "prop-1" {
		t.Fatalf("expected trimmed property id, got %q", repo.lastParams.PropertyID)
	}
	if repo.lastParams.Limit != 500 {
		t.Fatalf("expected configured row limit 500, got %d", repo.lastParams.Limit)
	}
	if repo.lastParams.StartDate == nil || !repo.lastParams.StartDate.Equal(start) {
		t.Fatal("start date not forwarded")
	}
	if repo.lastParams.EndDate == nil || !repo.lastParams.EndDate.Equal(end) {
		t.Fatal("end date not forwarded")
	}
}

func TestSummaryRejectsInvertedDateRange(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	svc := newTestService(t, repo)

	start := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Summary(context.Background(), SummaryParams{StartDate: &start, EndDate: &end})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestSummaryAggregatesRepoRows(t *testing.T) {
	email := "buyer@example.com"
	repo := &stubAnalyticsRepo{views: []models.PropertyView{
		{PropertyID: "prop-1", PropertyAddress: "9 Elm St", UserEmail: &email, FullViewAchieved: true},
		{PropertyID: "prop-1", PropertyAddress: "9 Elm St"},
	}}
	svc := newTestService(t, repo)

	summaries, err := svc.Summary(context.Background(), SummaryParams{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if summaries[0].TotalViews != 2 || summaries[0].UniqueViewersCount != 1 {
		t.Fatalf("unexpected summary %+v", summaries[0])
	}
}

func TestSummaryWrapsRepoError(t *testing.T) {
	repo := &stubAnalyticsRepo{err: errors.New("connection refused")}
	svc := newTestService(t, repo)

	_, err := svc.Summary(context.Background(), SummaryParams{})
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestPropertyDetailRequiresPropertyID(t *testing.T) {
	svc := newTestService(t, &stubAnalyticsRepo{})

	_, err := svc.PropertyDetail(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestPropertyDetailTrimsID(t *testing.T) {
	repo := &stubAnalyticsRepo{views: []models.PropertyView{{PropertyID: "prop-1"}}}
	svc := newTestService(t, repo)

	views, err := svc.PropertyDetail(context.Background(), " prop-1 ")
	if err != nil {
		t.Fatalf("PropertyDetail: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if repo.lastParams.PropertyID != "prop-1" {
		t.Fatalf("expected trimmed id, got %q", repo.lastParams.PropertyID)
	}
}

func TestNotificationHistoryUsesConfiguredLimit(t *testing.T) {
	repo := &stubAnalyticsRepo{history: []models.NotificationHistory{{}}}
	svc := newTestService(t, repo)

	history, err := svc.NotificationHistory(context.Background())
	if err != nil {
		t.Fatalf("NotificationHistory: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 row, got %d", len(history))
	}
	if repo.lastLimit != 50 {
		t.Fatalf("expected limit 50, got %d", repo.lastLimit)
	}
}

func TestNewServiceDefaultsLimits(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	svc, err := NewService(repo, config.AnalyticsConfig{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Summary(context.Background(), SummaryParams{}); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if repo.lastParams.Limit != 1000 {
		t.Fatalf("expected default row limit 1000, got %d", repo.lastParams.Limit)
	}

	if _, err := svc.NotificationHistory(context.Background()); err != nil {
		t.Fatalf("NotificationHistory: %v", err)
	}
	if repo.lastLimit != 100 {
		t.Fatalf("expected default history limit 100, got %d", repo.lastLimit)
	}
}
