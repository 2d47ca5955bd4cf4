package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "ux_seller_applications_pending_email"}

	if !IsUniqueViolation(dup, "") {
		t.Fatal("expected match on any constraint")
	}
	if !IsUniqueViolation(dup, "ux_seller_applications_pending_email") {
		t.Fatal("expected match on named constraint")
	}
	if IsUniqueViolation(dup, "ux_users_email") {
		t.Fatal("expected mismatch for a different constraint")
	}

	notNull := &pgconn.PgError{Code: "23502", ConstraintName: "ux_seller_applications_pending_email"}
	if IsUniqueViolation(notNull, "ux_seller_applications_pending_email") {
		t.Fatal("non-unique violation code must not match")
	}
}

func TestIsUniqueViolationWrapped(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "ux_users_email"}
	wrapped := fmt.Errorf("create user: %w", dup)

	if !IsUniqueViolation(wrapped, "ux_users_email") {
		t.Fatal("expected match through wrapping")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "ux_users_email"}

	if !IsUniqueViolation(dup, "ux_users_email") {
		t.Fatal("expected pq error to match")
	}
	if IsUniqueViolation(dup, "ux_other") {
		t.Fatal("expected mismatch for a different constraint")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	sqliteErr := errors.New("UNIQUE constraint failed: users.email")
	if !IsUniqueViolation(sqliteErr, "") {
		t.Fatal("expected sqlite message to match")
	}

	pgText := errors.New(`duplicate key value violates unique constraint "ux_users_email"`)
	if !IsUniqueViolation(pgText, "ux_users_email") {
		t.Fatal("expected named constraint in message to match")
	}
	if IsUniqueViolation(pgText, "ux_other") {
		t.Fatal("expected mismatch when the message names another constraint")
	}
}

func TestIsUniqueViolationNil(t *testing.T) {
	if IsUniqueViolation(nil, "anything") {
		t.Fatal("nil error must not match")
	}
}
