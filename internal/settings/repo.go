package settings

import (
	"context"
	"errors"
	"time"

	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes persistence for the policy singleton and per-admin knobs.
type Repository interface {
	FindPolicy(ctx context.Context) (*models.Setting, error)
	UpsertPolicy(ctx context.Context, setting *models.Setting, now time.Time) (*models.Setting, error)
	FindAdminSetting(ctx context.Context, adminID uuid.UUID) (*models.AdminSetting, error)
	UpsertAdminSetting(ctx context.Context, adminID uuid.UUID, autoApprove bool) (*models.AdminSetting, error)
	AnyAutoApproveEnabled(ctx context.Context) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a settings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// FindPolicy returns the singleton policy row, or nil when none exists yet.
func (r *repositoryImpl) FindPolicy(ctx context.Context) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).
		Where("scope = ?", models.SettingScopeGlobal).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// UpsertPolicy writes the policy row in one statement. The unique scope
// column makes concurrent saves converge on a single row instead of racing a
// read-then-insert sequence.
func (r *repositoryImpl) UpsertPolicy(ctx context.Context, setting *models.Setting, now time.Time) (*models.Setting, error) {
	setting.Scope = models.SettingScopeGlobal
	setting.UpdatedAt = now

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "scope"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"analytics_notification_enabled",
				"analytics_notification_threshold",
				"analytics_message_template",
				"analytics_notification_from_phone",
				"analytics_cooldown_enabled",
				"analytics_cooldown_hours",
				"analytics_quiet_hours_enabled",
				"analytics_quiet_hours_start",
				"analytics_quiet_hours_end",
				"analytics_quiet_hours_timezone",
				"analytics_queue_outside_hours",
				"analytics_progressive_milestones",
				"updated_at",
			}),
		}).
		Create(setting).Error
	if err != nil {
		return nil, err
	}

	return r.FindPolicy(ctx)
}

func (r *repositoryImpl) FindAdminSetting(ctx context.Context, adminID uuid.UUID) (*models.AdminSetting, error) {
	var setting models.AdminSetting
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *repositoryImpl) UpsertAdminSetting(ctx context.Context, adminID uuid.UUID, autoApprove bool) (*models.AdminSetting, error) {
	setting := models.AdminSetting{
		AdminID:            adminID,
		AutoApproveSellers: autoApprove,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "admin_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"auto_approve_sellers", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		return nil, err
	}
	return r.FindAdminSetting(ctx, adminID)
}

// AnyAutoApproveEnabled reports whether any admin turned auto-approve on.
func (r *repositoryImpl) AnyAutoApproveEnabled(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AdminSetting{}).
		Where("auto_approve_sellers = ?", true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
