package applications

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/deelmap/admin-backend/internal/settings"
	"github.com/deelmap/admin-backend/pkg/config"
	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/deelmap/admin-backend/pkg/enums"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/deelmap/admin-backend/pkg/logger"
	"github.com/deelmap/admin-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"gorm.io/gorm"
)

type stubAppRepo struct {
	app     *models.SellerApplication
	listed  []models.SellerApplication
	events  []models.ApplicationEvent
	findErr error
	saveErr error

	created *models.SellerApplication
	updated *models.SellerApplication
}

func (s *stubAppRepo) Create(ctx context.Context, app *models.SellerApplication) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	s.created = app
	return nil
}

func (s *stubAppRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.SellerApplication, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.app == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.app
	return &copied, nil
}

func (s *stubAppRepo) List(ctx context.Context, status string, cursor *pagination.Cursor, limit int) ([]models.SellerApplication, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if limit > 0 && len(s.listed) > limit {
		return s.listed[:limit], nil
	}
	return s.listed, nil
}

func (s *stubAppRepo) Update(ctx context.Context, app *models.SellerApplication) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.updated = app
	return nil
}

func (s *stubAppRepo) AppendEvent(ctx context.Context, event *models.ApplicationEvent) error {
	s.events = append(s.events, *event)
	return nil
}

func (s *stubAppRepo) ListEvents(ctx context.Context, applicationID uuid.UUID) ([]models.ApplicationEvent, error) {
	return s.events, nil
}

type stubSettingsService struct {
	autoApprove bool
	err         error
}

func (s stubSettingsService) Policy(ctx context.Context) (*models.Setting, error) { return nil, nil }

func (s stubSettingsService) SavePolicy(ctx context.Context, update settings.PolicyUpdate) (*models.Setting, error) {
	return nil, nil
}

func (s stubSettingsService) Preview(ctx context.Context, req settings.PreviewRequest) (*settings.PreviewResponse, error) {
	return nil, nil
}

func (s stubSettingsService) AutoApprove(ctx context.Context, adminID uuid.UUID) (bool, error) {
	return false, nil
}

func (s stubSettingsService) SetAutoApprove(ctx context.Context, adminID uuid.UUID, enabled bool) (bool, error) {
	return enabled, nil
}

func (s stubSettingsService) AutoApproveEnabled(ctx context.Context) (bool, error) {
	return s.autoApprove, s.err
}

type stubMailer struct {
	resp  *resend.SendEmailResponse
	err   error
	calls int
	last  *resend.SendEmailRequest
}

func (s *stubMailer) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	s.calls++
	s.last = params
	if s.err != nil {
		return nil, s.err
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{BaseURL: "http://localhost:3000"},
		Resend: config.ResendConfig{FromEmail: "Deelmap <noreply@deelmap.com>"},
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo Repository, settingsSvc stubSettingsService, mailer Mailer) Service {
	t.Helper()
	svc, err := NewService(repo, settingsSvc, mailer, testLogger(), testConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func pendingApp() *models.SellerApplication {
	return &models.SellerApplication{
		ID:                uuid.New(),
		BusinessName:      "Acme Deals",
		ContactPersonName: "Sam Rivera",
		Email:             "sam@acme.test",
		Status:            enums.ApplicationStatusPending,
		CreatedAt:         time.Now().UTC(),
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, stubSettingsService{}, nil, testLogger(), testConfig()); err == nil {
		t.Fatal("expected error without repo")
	}
	if _, err := NewService(&stubAppRepo{}, nil, nil, testLogger(), testConfig()); err == nil {
		t.Fatal("expected error without settings service")
	}
}

func TestSubmitCreatesPendingApplication(t *testing.T) {
	repo := &stubAppRepo{}
	mailer := &stubMailer{}
	svc := newTestService(t, repo, stubSettingsService{autoApprove: false}, mailer)

	result, err := svc.Submit(context.Background(), SubmitInput{
		BusinessName:      "Acme Deals",
		ContactPersonName: "Sam Rivera",
		Email:             "Sam@Acme.Test",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.AutoApproved {
		t.Fatal("expected no auto-approval")
	}
	if repo.created == nil || repo.created.Status != enums.ApplicationStatusPending {
		t.Fatalf("expected pending application, got %+v", repo.created)
	}
	if repo.created.Email != "sam@acme.test" {
		t.Fatalf("expected normalized email, got %q", repo.created.Email)
	}
	if repo.created.Password != nil || repo.created.ReviewedAt != nil {
		t.Fatal("expected no credential or review stamp on pending intake")
	}
	if mailer.calls != 0 {
		t.Fatalf("expected no email, got %d sends", mailer.calls)
	}
	if len(repo.events) != 1 || repo.events[0].ToStatus != enums.ApplicationStatusPending {
		t.Fatalf("expected one pending event, got %+v", repo.events)
	}
}

func TestSubmitAutoApprovesWhenEnabled(t *testing.T) {
	repo := &stubAppRepo{}
	mailer := &stubMailer{}
	svc := newTestService(t, repo, stubSettingsService{autoApprove: true}, mailer)

	result, err := svc.Submit(context.Background(), SubmitInput{
		BusinessName:      "Acme Deals",
		ContactPersonName: "Sam Rivera",
		Email:             "sam@acme.test",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.AutoApproved {
		t.Fatal("expected auto-approval")
	}
	if repo.created.Status != enums.ApplicationStatusApproved {
		t.Fatalf("expected approved status, got %s", repo.created.Status)
	}
	if repo.created.Password == nil || len(*repo.created.Password) == 0 {
		t.Fatal("expected generated password")
	}
	if repo.created.ReviewedAt == nil {
		t.Fatal("expected reviewed_at stamped")
	}
	if mailer.calls != 1 {
		t.Fatalf("expected exactly one email, got %d", mailer.calls)
	}
	if len(mailer.last.To) != 1 || mailer.last.To[0] != "sam@acme.test" {
		t.Fatalf("unexpected recipients: %v", mailer.last.To)
	}
	event := repo.events[0]
	if event.EmailStatus == nil || *event.EmailStatus != enums.EmailStatusSent {
		t.Fatalf("expected sent email status on event, got %+v", event)
	}
}

func TestSubmitEmailFailureDoesNotFailIntake(t *testing.T) {
	repo := &stubAppRepo{}
	mailer := &stubMailer{err: errors.New("provider down")}
	svc := newTestService(t, repo, stubSettingsService{autoApprove: true}, mailer)

	result, err := svc.Submit(context.Background(), SubmitInput{
		BusinessName:      "Acme Deals",
		ContactPersonName: "Sam Rivera",
		Email:             "sam@acme.test",
	})
	if err != nil {
		t.Fatalf("submit should survive email failure: %v", err)
	}
	if !result.AutoApproved {
		t.Fatal("expected auto-approval despite email failure")
	}
	event := repo.events[0]
	if event.EmailStatus == nil || *event.EmailStatus != enums.EmailStatusFailed {
		t.Fatalf("expected failed email status on event, got %+v", event)
	}
	if event.EmailError == nil || !strings.Contains(*event.EmailError, "provider down") {
		t.Fatalf("expected captured email error, got %+v", event.EmailError)
	}
}

func TestSubmitRequiresEmail(t *testing.T) {
	svc := newTestService(t, &stubAppRepo{}, stubSettingsService{}, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{BusinessName: "Acme", ContactPersonName: "Sam"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestSubmitDuplicatePendingEmailConflicts(t *testing.T) {
	repo := &stubAppRepo{saveErr: errors.New(`duplicate key value violates unique constraint "ux_seller_applications_pending_email"`)}
	svc := newTestService(t, repo, stubSettingsService{}, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{
		BusinessName:      "Acme",
		ContactPersonName: "Sam",
		Email:             "dupe@example.com",
	})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestUpdateStatusStampsReviewedAt(t *testing.T) {
	repo := &stubAppRepo{app: pendingApp()}
	svc := newTestService(t, repo, stubSettingsService{}, nil)

	app, err := svc.UpdateStatus(context.Background(), repo.app.ID, StatusUpdateInput{Status: "on_hold"})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if app.Status != enums.ApplicationStatusOnHold {
		t.Fatalf("expected on_hold, got %s", app.Status)
	}
	if app.ReviewedAt == nil {
		t.Fatal("expected reviewed_at stamped")
	}
	event := repo.events[0]
	if event.FromStatus == nil || *event.FromStatus != enums.ApplicationStatusPending {
		t.Fatalf("expected from_status pending, got %+v", event.FromStatus)
	}
	if event.ToStatus != enums.ApplicationStatusOnHold {
		t.Fatalf("expected to_status on_hold, got %s", event.ToStatus)
	}
}

func TestUpdateStatusRejectsApproved(t *testing.T) {
	repo := &stubAppRepo{app: pendingApp()}
	svc := newTestService(t, repo, stubSettingsService{}, nil)

	_, err := svc.UpdateStatus(context.Background(), repo.app.ID, StatusUpdateInput{Status: "approved"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("expected no status write")
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := &stubAppRepo{app: pendingApp()}
	svc := newTestService(t, repo, stubSettingsService{}, nil)

	_, err := svc.UpdateStatus(context.Background(), repo.app.ID, StatusUpdateInput{Status: "archived"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestApproveGeneratesCredentialAndSendsEmail(t *testing.T) {
	repo := &stubAppRepo{app: pendingApp()}
	mailer := &stubMailer{resp: &resend.SendEmailResponse{Id: "email-42"}}
	svc := newTestService(t, repo, stubSettingsService{}, mailer)

	result, err := svc.Approve(context.Background(), repo.app.ID, ApproveInput{})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if len(result.Password) == 0 {
		t.Fatal("expected generated password")
	}
	if result.EmailID != "email-42" {
		t.Fatalf("expected provider email id, got %q", result.EmailID)
	}
	if repo.updated == nil || repo.updated.Status != enums.ApplicationStatusApproved {
		t.Fatalf("expected approved write, got %+v", repo.updated)
	}
	if repo.updated.ReviewedAt == nil {
		t.Fatal("expected reviewed_at stamped")
	}
	if mailer.calls != 1 {
		t.Fatalf("expected one email, got %d", mailer.calls)
	}
}

func TestApproveRejectsShortCustomPassword(t *testing.T) {
	repo := &stubAppRepo{app: pendingApp()}
	svc := newTestService(t, repo, stubSettingsService{}, nil)

	short := "abc123"
	_, err := svc.Approve(context.Background(), repo.app.ID, ApproveInput{Password: &short})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if typed.Message() != "Password must be at least 8 characters" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if repo.updated != nil {
		t.Fatal("expected no write after validation failure")
	}
}

func TestApproveAlreadyApprovedConflicts(t *testing.T) {
	app := pendingApp()
	app.Status = enums.ApplicationStatusApproved
	repo := &stubAppRepo{app: app}
	svc := newTestService(t, repo, stubSettingsService{}, nil)

	_, err := svc.Approve(context.Background(), app.ID, ApproveInput{})
	if err == nil {
		t.Fatal("expected conflict")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestApproveEmailFailureKeepsApproval(t *testing.T) {
	repo := &stubAppRepo{app: pendingApp()}
	mailer := &stubMailer{err: errors.New("timeout")}
	svc := newTestService(t, repo, stubSettingsService{}, mailer)

	result, err := svc.Approve(context.Background(), repo.app.ID, ApproveInput{})
	if err != nil {
		t.Fatalf("approve should survive email failure: %v", err)
	}
	if result.EmailID != "" {
		t.Fatalf("expected no email id, got %q", result.EmailID)
	}
	if repo.updated == nil || repo.updated.Status != enums.ApplicationStatusApproved {
		t.Fatal("expected approval persisted")
	}
	event := repo.events[0]
	if event.EmailStatus == nil || *event.EmailStatus != enums.EmailStatusFailed {
		t.Fatalf("expected failed email status, got %+v", event)
	}
}

func TestSendCredentialsRequiresIssuedPassword(t *testing.T) {
	repo := &stubAppRepo{app: pendingApp()}
	svc := newTestService(t, repo, stubSettingsService{}, &stubMailer{})

	_, err := svc.SendCredentials(context.Background(), repo.app.ID)
	if err == nil {
		t.Fatal("expected conflict for unapproved application")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestSendCredentialsResendsEmail(t *testing.T) {
	app := pendingApp()
	app.Status = enums.ApplicationStatusApproved
	password := "secret-pass-12"
	app.Password = &password
	repo := &stubAppRepo{app: app}
	mailer := &stubMailer{resp: &resend.SendEmailResponse{Id: "email-7"}}
	svc := newTestService(t, repo, stubSettingsService{}, mailer)

	result, err := svc.SendCredentials(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("send credentials: %v", err)
	}
	if result.Password != password {
		t.Fatalf("expected stored password returned, got %q", result.Password)
	}
	if result.EmailID != "email-7" {
		t.Fatalf("expected email id, got %q", result.EmailID)
	}
}

func TestSendCredentialsSurfacesFailure(t *testing.T) {
	app := pendingApp()
	app.Status = enums.ApplicationStatusApproved
	password := "secret-pass-12"
	app.Password = &password
	repo := &stubAppRepo{app: app}
	svc := newTestService(t, repo, stubSettingsService{}, &stubMailer{err: errors.New("bounce")})

	_, err := svc.SendCredentials(context.Background(), app.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
	event := repo.events[0]
	if event.EmailStatus == nil || *event.EmailStatus != enums.EmailStatusFailed {
		t.Fatalf("expected failed email audit row, got %+v", event)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t, &stubAppRepo{}, stubSettingsService{}, nil)

	_, err := svc.Get(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestListValidatesStatusFilter(t *testing.T) {
	svc := newTestService(t, &stubAppRepo{}, stubSettingsService{}, nil)

	_, err := svc.List(context.Background(), ListParams{Status: "bogus"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestListPaginatesWithNextCursor(t *testing.T) {
	now := time.Now().UTC()
	var apps []models.SellerApplication
	for i := 0; i < 3; i++ {
		app := *pendingApp()
		app.CreatedAt = now.Add(-time.Duration(i) * time.Minute)
		apps = append(apps, app)
	}
	repo := &stubAppRepo{listed: apps}
	svc := newTestService(t, repo, stubSettingsService{}, nil)

	result, err := svc.List(context.Background(), ListParams{Page: pagination.Params{Limit: 2}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Applications) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(result.Applications))
	}
	if result.NextCursor == "" {
		t.Fatal("expected next cursor")
	}
	cursor, err := pagination.ParseCursor(result.NextCursor)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if cursor.ID != result.Applications[1].ID {
		t.Fatal("cursor should reference last returned row")
	}
}
