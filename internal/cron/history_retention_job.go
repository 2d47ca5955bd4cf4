package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/deelmap/admin-backend/pkg/logger"
	"gorm.io/gorm"
)

const defaultHistoryRetentionDays = 90

type HistoryRetentionJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository historyRetentionRepo
	Retention  int
}

type historyRetentionRepo interface {
	DeleteHistoryBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// NewHistoryRetentionJob prunes SMS notification history past the retention
// window.
func NewHistoryRetentionJob(params HistoryRetentionJobParams) (Job, error) {
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
		retention = defaultHistoryRetentionDays
	}
	return &historyRetentionJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type historyRetentionJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      historyRetentionRepo
	retention int
	now       func() time.Time
}

func (j *historyRetentionJob) Name() string { return "notification-history-retention" }

func (j *historyRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	var deleted int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.DeleteHistoryBefore(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("notification history retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "notification history retention complete")
	return nil
}
