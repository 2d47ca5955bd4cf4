package analytics

import (
	"context"
	"time"

	"github.com/deelmap/admin-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes read access to tracker and notification-engine tables.
type Repository interface {
	ListViews(ctx context.Context, params listViewsParams) ([]models.PropertyView, error)
	ListViewsForProperty(ctx context.Context, propertyID string) ([]models.PropertyView, error)
	ListNotificationHistory(ctx context.Context, limit int) ([]models.NotificationHistory, error)
	DeleteViewsBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
	DeleteHistoryBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an analytics repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listViewsParams struct {
	PropertyID string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
}

func (r *repositoryImpl) ListViews(ctx context.Context, params listViewsParams) ([]models.PropertyView, error) {
	query := r.db.WithContext(ctx).Model(&models.PropertyView{})
	if params.PropertyID != "" {
		query = query.Where("property_id = ?", params.PropertyID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	var views []models.PropertyView
	if err := query.Order("created_at DESC").Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repositoryImpl) ListViewsForProperty(ctx context.Context, propertyID string) ([]models.PropertyView, error) {
	var views []models.PropertyView
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repositoryImpl) ListNotificationHistory(ctx context.Context, limit int) ([]models.NotificationHistory, error) {
	query := r.db.WithContext(ctx).Model(&models.NotificationHistory{})
	if limit > 0 {
		query = query.Limit(limit)
	}

	var history []models.NotificationHistory
	if err := query.Order("sent_at DESC").Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

func (r *repositoryImpl) DeleteViewsBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	result := conn.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.PropertyView{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeleteHistoryBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	result := conn.WithContext(ctx).
		Where("sent_at < ?", cutoff).
		Delete(&models.NotificationHistory{})
	return result.RowsAffected, result.Error
}
