package auth

import (
	"context"
	"strings"

	"github.com/deelmap/admin-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads dashboard operator accounts.
type Repository interface {
	FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an auth repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
