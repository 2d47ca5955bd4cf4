package applications

import (
	"context"

	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/deelmap/admin-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists seller applications and their audit trail.
type Repository interface {
	Create(ctx context.Context, app *models.SellerApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SellerApplication, error)
	List(ctx context.Context, status string, cursor *pagination.Cursor, limit int) ([]models.SellerApplication, error)
	Update(ctx context.Context, app *models.SellerApplication) error
	AppendEvent(ctx context.Context, event *models.ApplicationEvent) error
	ListEvents(ctx context.Context, applicationID uuid.UUID) ([]models.ApplicationEvent, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an application repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, app *models.SellerApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.SellerApplication, error) {
	var app models.SellerApplication
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repositoryImpl) List(ctx context.Context, status string, cursor *pagination.Cursor, limit int) ([]models.SellerApplication, error) {
	query := r.db.WithContext(ctx).Model(&models.SellerApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var apps []models.SellerApplication
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *repositoryImpl) Update(ctx context.Context, app *models.SellerApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *repositoryImpl) AppendEvent(ctx context.Context, event *models.ApplicationEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repositoryImpl) ListEvents(ctx context.Context, applicationID uuid.UUID) ([]models.ApplicationEvent, error) {
	var events []models.ApplicationEvent
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
