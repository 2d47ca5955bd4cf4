package auth

import (
	"testing"
	"time"

	"github.com/deelmap/admin-backend/pkg/config"
	"github.com/google/uuid"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "deelmap",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	adminID := uuid.New()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{
		AdminID: adminID,
		Email:   "admin@deelmap.com",
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.AdminID != adminID {
		t.Fatalf("expected admin_id %s, got %s", adminID, claims.AdminID)
	}
	if claims.Email != "admin@deelmap.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
	wantExpiry := now.Add(30 * time.Minute)
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Unix() != wantExpiry.Unix() {
		t.Fatalf("unexpected expiry %v", claims.ExpiresAt)
	}
}

func TestMintAccessTokenKeepsProvidedJTI(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "deelmap", ExpirationMinutes: 5}

	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{
		AdminID: uuid.New(),
		JTI:     "session-1",
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.ID != "session-1" {
		t.Fatalf("expected jti session-1, got %q", claims.ID)
	}
}

func TestMintAccessTokenValidatesInput(t *testing.T) {
	valid := config.JWTConfig{Secret: "secret", Issuer: "deelmap", ExpirationMinutes: 5}

	cases := []struct {
		name    string
		cfg     config.JWTConfig
		payload AccessTokenPayload
	}{
		{"missing secret", config.JWTConfig{Issuer: "deelmap", ExpirationMinutes: 5}, AccessTokenPayload{AdminID: uuid.New()}},
		{"missing issuer", config.JWTConfig{Secret: "secret", ExpirationMinutes: 5}, AccessTokenPayload{AdminID: uuid.New()}},
		{"zero expiration", config.JWTConfig{Secret: "secret", Issuer: "deelmap"}, AccessTokenPayload{AdminID: uuid.New()}},
		{"nil admin id", valid, AccessTokenPayload{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MintAccessToken(tc.cfg, time.Now(), tc.payload); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "deelmap", ExpirationMinutes: 5}

	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{AdminID: uuid.New()})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "deelmap", ExpirationMinutes: 5}

	token, err := MintAccessToken(cfg, time.Now().UTC().Add(-time.Hour), AccessTokenPayload{AdminID: uuid.New()})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
