package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func decodeTest(t *testing.T, body string, dest any) error {
	t.Helper()
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	return DecodeJSONBody(r, dest)
}

func TestDecodeJSONBodyValid(t *testing.T) {
	var dest loginBody
	if err := decodeTest(t, `{"email":"admin@deelmap.com","password":"long-enough"}`, &dest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dest.Email != "admin@deelmap.com" {
		t.Fatalf("unexpected email %q", dest.Email)
	}
}

func TestDecodeJSONBodyEmptyBody(t *testing.T) {
	var dest loginBody
	err := decodeTest(t, "", &dest)
	if err == nil {
		t.Fatal("expected error for empty body")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if typed.Message() != "request body is required" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var dest loginBody
	err := decodeTest(t, `{"email":"a@b.co","password":"long-enough","extra":true}`, &dest)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestDecodeJSONBodyFieldMessagesUseJSONNames(t *testing.T) {
	var dest loginBody
	err := decodeTest(t, `{"email":"not-an-email","password":"short"}`, &dest)
	if err == nil {
		t.Fatal("expected validation error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected string detail map, got %T", typed.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", details["email"])
	}
	if details["password"] != "must be at least 8" {
		t.Fatalf("unexpected password message %q", details["password"])
	}
}
