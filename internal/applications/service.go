package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deelmap/admin-backend/internal/settings"
	"github.com/deelmap/admin-backend/pkg/config"
	"github.com/deelmap/admin-backend/pkg/db"
	"github.com/deelmap/admin-backend/pkg/db/models"
	"github.com/deelmap/admin-backend/pkg/enums"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/deelmap/admin-backend/pkg/logger"
	"github.com/deelmap/admin-backend/pkg/pagination"
	"github.com/deelmap/admin-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"gorm.io/gorm"
)

const minCustomPasswordLength = 8

// Mailer is the slice of the Resend SDK the approval flow needs. The SDK
// client's Emails service satisfies it.
type Mailer interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Service manages the seller application lifecycle.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SellerApplication, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input StatusUpdateInput) (*models.SellerApplication, error)
	Approve(ctx context.Context, id uuid.UUID, input ApproveInput) (*ApproveResult, error)
	SendCredentials(ctx context.Context, id uuid.UUID) (*ApproveResult, error)
	Events(ctx context.Context, id uuid.UUID) ([]models.ApplicationEvent, error)
}

type service struct {
	repo     Repository
	settings settings.Service
	mailer   Mailer
	logg     *logger.Logger
	from     string
	loginURL string
	now      func() time.Time
}

// NewService wires application dependencies. The mailer may be nil when no
// email provider is configured; sends are then recorded as skipped.
func NewService(repo Repository, settingsSvc settings.Service, mailer Mailer, logg *logger.Logger, cfg *config.Config) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "applications repository required")
	}
	if settingsSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "settings service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	if cfg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "config required")
	}
	return &service{
		repo:     repo,
		settings: settingsSvc,
		mailer:   mailer,
		logg:     logg,
		from:     cfg.Resend.FromEmail,
		loginURL: strings.TrimRight(cfg.App.BaseURL, "/") + "/login",
		now:      time.Now,
	}, nil
}

// Submit stores a new application. When any admin has auto-approve enabled
// the application lands already approved with a generated credential and the
// credentials email goes out immediately.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.BusinessName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
	}
	if strings.TrimSpace(input.ContactPersonName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact person name is required")
	}

	autoApprove, err := s.settings.AutoApproveEnabled(ctx)
	if err != nil {
		return nil, err
	}

	app := &models.SellerApplication{
		BusinessName:      strings.TrimSpace(input.BusinessName),
		ContactPersonName: strings.TrimSpace(input.ContactPersonName),
		Email:             email,
		Phone:             strings.TrimSpace(input.Phone),
		BusinessType:      input.BusinessType,
		DealsPerMonth:     input.DealsPerMonth,
		PrimaryMarkets:    input.PrimaryMarkets,
		PropertyTypes:     input.PropertyTypes,
		Website:           input.Website,
		Linkedin:          input.Linkedin,
		Description:       input.Description,
		Status:            enums.ApplicationStatusPending,
	}

	var password string
	if autoApprove {
		password, err = security.GenerateSellerPassword(security.SellerPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate seller password")
		}
		now := s.now().UTC()
		app.Status = enums.ApplicationStatusApproved
		app.Password = &password
		app.ReviewedAt = &now
	}

	if err := s.repo.Create(ctx, app); err != nil {
		if db.IsUniqueViolation(err, "ux_seller_applications_pending_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an application for this email is already pending")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
	}

	event := &models.ApplicationEvent{
		ApplicationID: app.ID,
		ToStatus:      app.Status,
	}
	if autoApprove {
		emailStatus, _, emailErr := s.sendCredentialsEmail(ctx, app, password)
		event.EmailStatus = &emailStatus
		event.EmailError = emailErr
	}
	if err := s.repo.AppendEvent(ctx, event); err != nil {
		s.logg.Error(ctx, "append application event", err)
	}

	return &SubmitResult{Application: app, AutoApproved: autoApprove}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.SellerApplication, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find application")
	}
	return app, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	status := strings.TrimSpace(params.Status)
	if status != "" {
		if _, err := enums.ParseApplicationStatus(status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}

	cursor, err := pagination.ParseCursor(params.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	limit := pagination.NormalizeLimit(params.Page.Limit)
	apps, err := s.repo.List(ctx, status, cursor, pagination.LimitWithBuffer(params.Page.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications")
	}

	result := &ListResult{Applications: apps}
	if len(apps) > limit {
		result.Applications = apps[:limit]
		last := result.Applications[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

// UpdateStatus moves an application between review states. Approval issues
// credentials and must go through Approve, so approved is rejected here.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input StatusUpdateInput) (*models.SellerApplication, error) {
	status, err := enums.ParseApplicationStatus(strings.TrimSpace(input.Status))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if status == enums.ApplicationStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "use the approve endpoint to approve an application")
	}

	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fromStatus := app.Status
	now := s.now().UTC()
	app.Status = status
	app.ReviewedAt = &now

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update application status")
	}

	event := &models.ApplicationEvent{
		ApplicationID: app.ID,
		FromStatus:    &fromStatus,
		ToStatus:      status,
	}
	if err := s.repo.AppendEvent(ctx, event); err != nil {
		s.logg.Error(ctx, "append application event", err)
	}
	return app, nil
}

// Approve issues seller credentials, stores them on the application, and
// attempts the credentials email. A failed send does not roll back the
// approval; the attempt lands on the audit trail either way.
func (s *service) Approve(ctx context.Context, id uuid.UUID, input ApproveInput) (*ApproveResult, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status == enums.ApplicationStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "application is already approved")
	}

	var password string
	if input.Password != nil {
		password = *input.Password
		if len(password) < minCustomPasswordLength {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Password must be at least 8 characters")
		}
	} else {
		password, err = security.GenerateSellerPassword(security.SellerPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate seller password")
		}
	}

	fromStatus := app.Status
	now := s.now().UTC()
	app.Status = enums.ApplicationStatusApproved
	app.Password = &password
	app.ReviewedAt = &now

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve application")
	}

	emailStatus, emailID, emailErr := s.sendCredentialsEmail(ctx, app, password)
	event := &models.ApplicationEvent{
		ApplicationID: app.ID,
		FromStatus:    &fromStatus,
		ToStatus:      enums.ApplicationStatusApproved,
		EmailStatus:   &emailStatus,
		EmailError:    emailErr,
	}
	if err := s.repo.AppendEvent(ctx, event); err != nil {
		s.logg.Error(ctx, "append application event", err)
	}

	return &ApproveResult{Application: app, Password: password, EmailID: emailID}, nil
}

// SendCredentials re-sends the approval email for an already approved
// application.
func (s *service) SendCredentials(ctx context.Context, id uuid.UUID) (*ApproveResult, error) {
	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != enums.ApplicationStatusApproved || app.Password == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "application has no issued credentials")
	}

	emailStatus, emailID, emailErr := s.sendCredentialsEmail(ctx, app, *app.Password)
	event := &models.ApplicationEvent{
		ApplicationID: app.ID,
		ToStatus:      app.Status,
		EmailStatus:   &emailStatus,
		EmailError:    emailErr,
	}
	if err := s.repo.AppendEvent(ctx, event); err != nil {
		s.logg.Error(ctx, "append application event", err)
	}

	if emailStatus == enums.EmailStatusFailed {
		msg := "credentials email failed"
		if emailErr != nil {
			msg = *emailErr
		}
		return nil, pkgerrors.New(pkgerrors.CodeDependency, msg)
	}

	return &ApproveResult{
		Application: app,
		Password:    *app.Password,
		EmailID:     emailID,
	}, nil
}

func (s *service) Events(ctx context.Context, id uuid.UUID) ([]models.ApplicationEvent, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.repo.ListEvents(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list application events")
	}
	return events, nil
}

func (s *service) sendCredentialsEmail(ctx context.Context, app *models.SellerApplication, password string) (enums.EmailStatus, string, *string) {
	if s.mailer == nil {
		return enums.EmailStatusSkipped, "", nil
	}

	resp, err := s.mailer.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{app.Email},
		Subject: credentialsEmailSubject,
		Html:    credentialsEmailHTML(app, password, s.loginURL),
	})
	if err != nil {
		s.logg.Error(ctx, "send credentials email", err)
		msg := err.Error()
		return enums.EmailStatusFailed, "", &msg
	}

	return enums.EmailStatusSent, resp.Id, nil
}
