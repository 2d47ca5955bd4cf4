package settings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deelmap/admin-backend/pkg/db/models"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/google/uuid"
)

type stubSettingsRepo struct {
	policy       *models.Setting
	adminSetting *models.AdminSetting
	anyEnabled   bool
	err          error

	upserted      *models.Setting
	upsertedAdmin *models.AdminSetting
}

func (s *stubSettingsRepo) FindPolicy(ctx context.Context) (*models.Setting, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.upserted != nil {
		return s.upserted, nil
	}
	return s.policy, nil
}

func (s *stubSettingsRepo) UpsertPolicy(ctx context.Context, setting *models.Setting, now time.Time) (*models.Setting, error) {
	if s.err != nil {
		return nil, s.err
	}
	setting.Scope = models.SettingScopeGlobal
	setting.UpdatedAt = now
	s.upserted = setting
	return setting, nil
}

func (s *stubSettingsRepo) FindAdminSetting(ctx context.Context, adminID uuid.UUID) (*models.AdminSetting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.adminSetting, nil
}

func (s *stubSettingsRepo) UpsertAdminSetting(ctx context.Context, adminID uuid.UUID, autoApprove bool) (*models.AdminSetting, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.upsertedAdmin = &models.AdminSetting{AdminID: adminID, AutoApproveSellers: autoApprove}
	return s.upsertedAdmin, nil
}

func (s *stubSettingsRepo) AnyAutoApproveEnabled(ctx context.Context) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.anyEnabled, nil
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestPolicyReturnsDefaultsWhenUnsaved(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	policy, err := svc.Policy(context.Background())
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if policy.NotificationThreshold != 2 {
		t.Fatalf("expected default threshold 2, got %d", policy.NotificationThreshold)
	}
	if policy.MessageTemplate != defaultMessageTemplate {
		t.Fatalf("expected default template, got %q", policy.MessageTemplate)
	}
	if len(policy.ProgressiveMilestones) != 3 {
		t.Fatalf("expected 3 default milestones, got %d", len(policy.ProgressiveMilestones))
	}
}

func TestPolicyReturnsStoredRow(t *testing.T) {
	stored := DefaultPolicy()
	stored.NotificationThreshold = 7
	repo := &stubSettingsRepo{policy: &stored}
	svc, _ := NewService(repo)

	policy, err := svc.Policy(context.Background())
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if policy.NotificationThreshold != 7 {
		t.Fatalf("expected stored threshold 7, got %d", policy.NotificationThreshold)
	}
}

func TestSavePolicyRejectsZeroThreshold(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, _ := NewService(repo)

	zero := 0
	_, err := svc.SavePolicy(context.Background(), PolicyUpdate{NotificationThreshold: &zero})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if !strings.Contains(typed.Message(), "threshold") {
		t.Fatalf("expected message to mention threshold, got %q", typed.Message())
	}
	if repo.upserted != nil {
		t.Fatal("expected no upsert after validation failure")
	}
}

func TestSavePolicyRejectsTemplateMissingPlaceholders(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, _ := NewService(repo)

	template := "Your property got views!"
	_, err := svc.SavePolicy(context.Background(), PolicyUpdate{MessageTemplate: &template})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	want := "Message template must include: {address}, {magic_link}"
	if typed.Message() != want {
		t.Fatalf("expected %q, got %q", want, typed.Message())
	}
}

func TestSavePolicyMergesPartialUpdate(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, _ := NewService(repo)

	threshold := 5
	cooldown := true
	saved, err := svc.SavePolicy(context.Background(), PolicyUpdate{
		NotificationThreshold: &threshold,
		CooldownEnabled:       &cooldown,
	})
	if err != nil {
		t.Fatalf("save policy: %v", err)
	}
	if saved.NotificationThreshold != 5 {
		t.Fatalf("expected threshold 5, got %d", saved.NotificationThreshold)
	}
	if !saved.CooldownEnabled {
		t.Fatal("expected cooldown enabled")
	}
	if saved.MessageTemplate != defaultMessageTemplate {
		t.Fatalf("expected untouched template, got %q", saved.MessageTemplate)
	}
	if saved.Scope != models.SettingScopeGlobal {
		t.Fatalf("expected global scope, got %q", saved.Scope)
	}
}

func TestSavePolicyAllowsMilestonesWithoutPlaceholders(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, _ := NewService(repo)

	update := DefaultPolicy().ProgressiveMilestones
	update[0].Message = "no placeholders here"
	_, err := svc.SavePolicy(context.Background(), PolicyUpdate{ProgressiveMilestones: &update})
	if err != nil {
		t.Fatalf("expected milestone messages to skip placeholder validation, got %v", err)
	}
}

func TestSavePolicyDependencyError(t *testing.T) {
	repo := &stubSettingsRepo{err: errors.New("boom")}
	svc, _ := NewService(repo)

	_, err := svc.SavePolicy(context.Background(), PolicyUpdate{})
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestPreviewRendersSampleValues(t *testing.T) {
	svc, _ := NewService(&stubSettingsRepo{})

	resp, err := svc.Preview(context.Background(), PreviewRequest{
		Template:   "Hey {seller_name}! {address} got {no_of_views} views: {magic_link}",
		SellerName: "Ana",
		NoOfViews:  4,
		Address:    "12 Oak St",
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(resp.Rendered, "Ana") || !strings.Contains(resp.Rendered, "12 Oak St") {
		t.Fatalf("expected bindings rendered, got %q", resp.Rendered)
	}
	if strings.Contains(resp.Rendered, "{") {
		t.Fatalf("expected all placeholders replaced, got %q", resp.Rendered)
	}
	if resp.Segments < 1 {
		t.Fatalf("expected at least one segment, got %d", resp.Segments)
	}
}

func TestPreviewRequiresTemplate(t *testing.T) {
	svc, _ := NewService(&stubSettingsRepo{})

	_, err := svc.Preview(context.Background(), PreviewRequest{Template: "  "})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSetAutoApproveRoundTrip(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, _ := NewService(repo)

	adminID := uuid.New()
	enabled, err := svc.SetAutoApprove(context.Background(), adminID, true)
	if err != nil {
		t.Fatalf("set auto approve: %v", err)
	}
	if !enabled {
		t.Fatal("expected enabled true")
	}
	if repo.upsertedAdmin == nil || repo.upsertedAdmin.AdminID != adminID {
		t.Fatal("expected admin setting upsert")
	}
}

func TestSetAutoApproveRequiresAdminID(t *testing.T) {
	svc, _ := NewService(&stubSettingsRepo{})

	_, err := svc.SetAutoApprove(context.Background(), uuid.Nil, true)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestAutoApproveDefaultsFalse(t *testing.T) {
	svc, _ := NewService(&stubSettingsRepo{})

	enabled, err := svc.AutoApprove(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("auto approve: %v", err)
	}
	if enabled {
		t.Fatal("expected false before any setting is stored")
	}
}

func TestAutoApproveEnabledQueriesRepo(t *testing.T) {
	svc, _ := NewService(&stubSettingsRepo{anyEnabled: true})

	enabled, err := svc.AutoApproveEnabled(context.Background())
	if err != nil {
		t.Fatalf("auto approve enabled: %v", err)
	}
	if !enabled {
		t.Fatal("expected true")
	}
}
