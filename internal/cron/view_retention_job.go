package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/deelmap/admin-backend/pkg/logger"
	"gorm.io/gorm"
)

const defaultViewRetentionDays = 180

type ViewRetentionJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository viewRetentionRepo
	Retention  int
}

type viewRetentionRepo interface {
	DeleteViewsBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// NewViewRetentionJob prunes raw property view events past the retention
// window. Summaries fold recent events only, so old rows carry no dashboard
// value.
func NewViewRetentionJob(params ViewRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultViewRetentionDays
	}
	return &viewRetentionJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type viewRetentionJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      viewRetentionRepo
	retention int
	now       func() time.Time
}

func (j *viewRetentionJob) Name() string { return "property-view-retention" }

func (j *viewRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	var deleted int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.DeleteViewsBefore(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("property view retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "property view retention complete")
	return nil
}
