package auth

import (
	"context"
	"testing"

	pkgauth "github.com/deelmap/admin-backend/pkg/auth"
	"github.com/deelmap/admin-backend/pkg/config"
	"github.com/deelmap/admin-backend/pkg/db/models"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/deelmap/admin-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubAuthRepo struct {
	admin *models.Admin
	err   error
}

func (s *stubAuthRepo) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.admin == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "deelmap-admin",
		ExpirationMinutes: 60,
	}
}

func testAdmin(t *testing.T, password string) *models.Admin {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.Admin{
		ID:           uuid.New(),
		Email:        "admin@deelmap.com",
		PasswordHash: hash,
		Name:         "Admin",
	}
}

func TestNewServiceRequiresSecret(t *testing.T) {
	if _, err := NewService(&stubAuthRepo{}, config.JWTConfig{}); err == nil {
		t.Fatal("expected error without jwt secret")
	}
}

func TestLoginSuccessMintsParsableToken(t *testing.T) {
	admin := testAdmin(t, "correct horse")
	svc, err := NewService(&stubAuthRepo{admin: admin}, testJWTConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginInput{Email: "Admin@Deelmap.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected access token")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.AdminID != admin.ID {
		t.Fatalf("expected admin id %s got %s", admin.ID, claims.AdminID)
	}
	if claims.Email != admin.Email {
		t.Fatalf("expected email %s got %s", admin.Email, claims.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	admin := testAdmin(t, "correct horse")
	svc, _ := NewService(&stubAuthRepo{admin: admin}, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginInput{Email: admin.Email, Password: "wrong"})
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _ := NewService(&stubAuthRepo{}, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@deelmap.com", Password: "whatever"})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %v", err)
	}
	if typed.Message() != "invalid credentials" {
		t.Fatalf("expected indistinguishable message, got %q", typed.Message())
	}
}

func TestLoginRequiresFields(t *testing.T) {
	svc, _ := NewService(&stubAuthRepo{}, testJWTConfig())

	_, err := svc.Login(context.Background(), LoginInput{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}
