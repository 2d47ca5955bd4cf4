package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deelmap/admin-backend/pkg/logger"
	"gorm.io/gorm"
)

func TestHistoryRetentionJobDeletesExpiredRows(t *testing.T) {
	now := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeHistoryRepo{deletedRows: 12}
	job := newHistoryRetentionJob(t, repo)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectedCutoff := now.UTC().Add(-defaultHistoryRetentionDays * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, repo.lastCutoff)
	}
	if repo.called != 1 {
		t.Fatalf("expected repo called once, got %d", repo.called)
	}
}

func TestHistoryRetentionJobPropagatesErrors(t *testing.T) {
	repo := &fakeHistoryRepo{err: errors.New("boom")}
	job := newHistoryRetentionJob(t, repo)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newHistoryRetentionJob(t *testing.T, repo *fakeHistoryRepo) *historyRetentionJob {
	t.Helper()
	jobIface, err := NewHistoryRetentionJob(HistoryRetentionJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		DB:         fakeTxRunner{},
		Repository: repo,
	})
	if err != nil {
		t.Fatalf("NewHistoryRetentionJob: %v", err)
	}
	job, ok := jobIface.(*historyRetentionJob)
	if !ok {
		t.Fatalf("expected historyRetentionJob, got %T", jobIface)
	}
	return job
}

type fakeHistoryRepo struct {
	lastCutoff  time.Time
	deletedRows int64
	err         error
	called      int
}

func (f *fakeHistoryRepo) DeleteHistoryBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.deletedRows, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
