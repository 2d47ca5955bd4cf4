package properties

import (
	"context"

	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/deelmap/admin-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository persists property listings and their images.
type Repository interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, filter listFilter, cursor *pagination.Cursor, limit int) ([]models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	ReplaceImages(ctx context.Context, propertyID uuid.UUID, images []models.PropertyImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*DashboardStats, error)
}

type listFilter struct {
	Status         string
	PropertyStatus string
	City           string
	Search         string
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a property repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&property, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *repositoryImpl) List(ctx context.Context, filter listFilter, cursor *pagination.Cursor, limit int) ([]models.Property, error) {
	query := r.db.WithContext(ctx).Model(&models.Property{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PropertyStatus != "" {
		query = query.Where("property_status = ?", filter.PropertyStatus)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("address ILIKE ? OR city ILIKE ? OR zip_code ILIKE ?", pattern, pattern, pattern)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var properties []models.Property
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *repositoryImpl) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Omit("Images").Save(property).Error
}

// ReplaceImages swaps the full ordered image set in one transaction.
func (r *repositoryImpl) ReplaceImages(ctx context.Context, propertyID uuid.UUID, images []models.PropertyImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", propertyID).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Property{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repositoryImpl) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	base := r.db.WithContext(ctx).Model(&models.Property{})

	type countRow struct {
		Status string
		Count  int64
	}
	var byStatus []countRow
	if err := base.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.TotalProperties += row.Count
		switch row.Status {
		case "published":
			stats.PublishedProperties = row.Count
		case "draft":
			stats.DraftProperties = row.Count
		}
	}

	var byPropertyStatus []countRow
	if err := base.Session(&gorm.Session{}).
		Select("property_status AS status, COUNT(*) AS count").
		Group("property_status").
		Scan(&byPropertyStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byPropertyStatus {
		switch row.Status {
		case "sold":
			stats.SoldProperties = row.Count
		case "under_contract":
			stats.UnderContract = row.Count
		}
	}

	type valueRow struct {
		Total   decimal.Decimal
		Average decimal.Decimal
	}
	var value valueRow
	err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(price), 0) AS total, COALESCE(AVG(price), 0) AS average").
		Where("price IS NOT NULL").
		Scan(&value).Error
	if err != nil {
		return nil, err
	}
	stats.TotalPortfolioValue = value.Total
	stats.AveragePrice = value.Average.Round(2)

	return stats, nil
}
