package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deelmap/admin-backend/pkg/logger"
	"gorm.io/gorm"
)

func TestViewRetentionJobDeletesExpiredRows(t *testing.T) {
	now := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeViewRepo{deletedRows: 300}
	job := newViewRetentionJob(t, repo, 0)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectedCutoff := now.UTC().Add(-defaultViewRetentionDays * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, repo.lastCutoff)
	}
}

func TestViewRetentionJobHonorsConfiguredRetention(t *testing.T) {
	now := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeViewRepo{}
	job := newViewRetentionJob(t, repo, 30)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectedCutoff := now.UTC().Add(-30 * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, repo.lastCutoff)
	}
}

func TestViewRetentionJobPropagatesErrors(t *testing.T) {
	repo := &fakeViewRepo{err: errors.New("boom")}
	job := newViewRetentionJob(t, repo, 0)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newViewRetentionJob(t *testing.T, repo *fakeViewRepo, retention int) *viewRetentionJob {
	t.Helper()
	jobIface, err := NewViewRetentionJob(ViewRetentionJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		DB:         fakeTxRunner{},
		Repository: repo,
		Retention:  retention,
	})
	if err != nil {
		t.Fatalf("NewViewRetentionJob: %v", err)
	}
	job, ok := jobIface.(*viewRetentionJob)
	if !ok {
		t.Fatalf("expected viewRetentionJob, got %T", jobIface)
	}
	return job
}

type fakeViewRepo struct {
	lastCutoff  time.Time
	deletedRows int64
	err         error
	called      int
}

func (f *fakeViewRepo) DeleteViewsBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.deletedRows, nil
}
