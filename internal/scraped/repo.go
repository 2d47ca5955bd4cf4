package scraped

import (
	"context"

	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/deelmap/admin-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads and prunes ingested wholesale deals.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.ScrapedProperty, error)
	List(ctx context.Context, filter listFilter, cursor *pagination.Cursor, limit int) ([]models.ScrapedProperty, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type listFilter struct {
	SourceType string
	Search     string
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a scraped-deal repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.ScrapedProperty, error) {
	var deal models.ScrapedProperty
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&deal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *repositoryImpl) List(ctx context.Context, filter listFilter, cursor *pagination.Cursor, limit int) ([]models.ScrapedProperty, error) {
	query := r.db.WithContext(ctx).Model(&models.ScrapedProperty{}).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})
	if filter.SourceType != "" {
		query = query.Where("source_type = ?", filter.SourceType)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_address ILIKE ? OR city ILIKE ? OR agent_name ILIKE ?", pattern, pattern, pattern)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var deals []models.ScrapedProperty
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

// Delete removes the deal and its photos together. Photos go first so a
// partial failure cannot orphan them.
func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_id = ?", id).Delete(&models.ScrapedPhoto{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ScrapedProperty{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
