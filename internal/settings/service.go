package settings

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/deelmap/admin-backend/pkg/db/models"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/google/uuid"
)

const smsSegmentLength = 160

// Service manages the notification policy singleton and per-admin toggles.
type Service interface {
	Policy(ctx context.Context) (*models.Setting, error)
	SavePolicy(ctx context.Context, update PolicyUpdate) (*models.Setting, error)
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)
	AutoApprove(ctx context.Context, adminID uuid.UUID) (bool, error)
	SetAutoApprove(ctx context.Context, adminID uuid.UUID, enabled bool) (bool, error)
	AutoApproveEnabled(ctx context.Context) (bool, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires settings dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "settings repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Policy returns the stored policy, or the built-in defaults when no row has
// been saved yet. Callers always get a fully populated policy.
func (s *service) Policy(ctx context.Context) (*models.Setting, error) {
	stored, err := s.repo.FindPolicy(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load notification policy")
	}
	if stored == nil {
		defaults := DefaultPolicy()
		return &defaults, nil
	}
	return stored, nil
}

// SavePolicy merges the partial update over the current policy, validates the
// result, and upserts the singleton row.
func (s *service) SavePolicy(ctx context.Context, update PolicyUpdate) (*models.Setting, error) {
	current, err := s.Policy(ctx)
	if err != nil {
		return nil, err
	}

	merged := *current
	applyUpdate(&merged, update)

	if merged.NotificationThreshold < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Notification threshold must be at least 1")
	}
	if missing := MissingPlaceholders(merged.MessageTemplate); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Message template must include: "+strings.Join(missing, ", "))
	}

	saved, err := s.repo.UpsertPolicy(ctx, &merged, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save notification policy")
	}
	return saved, nil
}

// Preview renders a template against sample bindings without persisting
// anything. Milestone messages are previewed the same way as the top-level
// template, so required-placeholder validation is intentionally skipped here.
func (s *service) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	if strings.TrimSpace(req.Template) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "template is required")
	}

	magicLink := "https://deelmap.com/s/preview"
	rendered := RenderTemplate(req.Template, Bindings{
		SellerName: req.SellerName,
		NoOfViews:  strconv.Itoa(req.NoOfViews),
		Address:    req.Address,
		MagicLink:  magicLink,
	})

	segments := (len(rendered) + smsSegmentLength - 1) / smsSegmentLength
	if segments < 1 {
		segments = 1
	}

	return &PreviewResponse{
		Rendered:  rendered,
		Length:    len(rendered),
		Segments:  segments,
		MagicLink: magicLink,
	}, nil
}

func (s *service) AutoApprove(ctx context.Context, adminID uuid.UUID) (bool, error) {
	setting, err := s.repo.FindAdminSetting(ctx, adminID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin setting")
	}
	if setting == nil {
		return false, nil
	}
	return setting.AutoApproveSellers, nil
}

func (s *service) SetAutoApprove(ctx context.Context, adminID uuid.UUID, enabled bool) (bool, error) {
	if adminID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "admin id is required")
	}
	saved, err := s.repo.UpsertAdminSetting(ctx, adminID, enabled)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save admin setting")
	}
	return saved.AutoApproveSellers, nil
}

// AutoApproveEnabled reports whether any admin has auto-approval on. The
// application intake path consults this before deciding the initial status.
func (s *service) AutoApproveEnabled(ctx context.Context) (bool, error) {
	enabled, err := s.repo.AnyAutoApproveEnabled(ctx)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check auto-approve")
	}
	return enabled, nil
}

func applyUpdate(target *models.Setting, update PolicyUpdate) {
	if update.NotificationEnabled != nil {
		target.NotificationEnabled = *update.NotificationEnabled
	}
	if update.NotificationThreshold != nil {
		target.NotificationThreshold = *update.NotificationThreshold
	}
	if update.MessageTemplate != nil {
		target.MessageTemplate = *update.MessageTemplate
	}
	if update.FromPhone != nil {
		target.FromPhone = *update.FromPhone
	}
	if update.CooldownEnabled != nil {
		target.CooldownEnabled = *update.CooldownEnabled
	}
	if update.CooldownHours != nil {
		target.CooldownHours = *update.CooldownHours
	}
	if update.QuietHoursEnabled != nil {
		target.QuietHoursEnabled = *update.QuietHoursEnabled
	}
	if update.QuietHoursStart != nil {
		target.QuietHoursStart = *update.QuietHoursStart
	}
	if update.QuietHoursEnd != nil {
		target.QuietHoursEnd = *update.QuietHoursEnd
	}
	if update.QuietHoursTimezone != nil {
		target.QuietHoursTimezone = *update.QuietHoursTimezone
	}
	if update.QueueOutsideHours != nil {
		target.QueueOutsideHours = *update.QueueOutsideHours
	}
	if update.ProgressiveMilestones != nil {
		target.ProgressiveMilestones = *update.ProgressiveMilestones
	}
}
