package auth

import (
	"testing"
	"time"

	"github.com/buyfrescapp/frescapp-backend/pkg/config"
	"github.com/google/uuid"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "frescapp-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()
	payload := AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "cliente@frescapp.test",
		JTI:    "session-1",
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("expected user id %s got %s", payload.UserID, claims.UserID)
	}
	if claims.Email != payload.Email {
		t.Fatalf("expected email %s got %s", payload.Email, claims.Email)
	}
	if claims.ID != "session-1" {
		t.Fatalf("expected jti session-1 got %s", claims.ID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s got %s", cfg.Issuer, claims.Issuer)
	}

	wantExpiry := now.Add(15 * time.Minute)
	if diff := claims.ExpiresAt.Time.Sub(wantExpiry); diff > time.Second || diff < -time.Second {
		t.Fatalf("expiry off by %s", diff)
	}
}

func TestMintAccessTokenGeneratesJTI(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "cliente@frescapp.test",
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
}

func TestMintAccessTokenRequiresUserID(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{Email: "x@y.test"}); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.Secret = "a-different-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature rejection")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired rejection")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected issuer rejection")
	}
}

func TestParseAccessTokenAllowExpired(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{
		UserID: userID,
		Email:  "cliente@frescapp.test",
		JTI:    "stale-session",
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("expected expired token to parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s got %s", userID, claims.UserID)
	}
	if claims.ID != "stale-session" {
		t.Fatalf("expected jti stale-session got %s", claims.ID)
	}

	other := cfg
	other.Secret = "a-different-secret"
	if _, err := ParseAccessTokenAllowExpired(other, token); err == nil {
		t.Fatal("expected signature rejection")
	}

	wrongIssuer := cfg
	wrongIssuer.Issuer = "someone-else"
	if _, err := ParseAccessTokenAllowExpired(wrongIssuer, token); err == nil {
		t.Fatal("expected issuer rejection")
	}
}
