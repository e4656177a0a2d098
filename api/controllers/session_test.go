package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/buyfrescapp/frescapp-backend/pkg/auth"
	"github.com/buyfrescapp/frescapp-backend/pkg/auth/session"
	"github.com/buyfrescapp/frescapp-backend/pkg/config"
)

type stubSessionTokenManager struct {
	lastRevoked    string
	lastRotateOld  string
	lastRotateBody string
	rotateRespID   string
	rotateRespTok  string
	rotateErr      error
	revokeErr      error
}

func (s *stubSessionTokenManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	s.lastRotateOld = oldAccessID
	s.lastRotateBody = provided
	return s.rotateRespID, s.rotateRespTok, s.rotateErr
}

func (s *stubSessionTokenManager) Revoke(ctx context.Context, accessID string) error {
	s.lastRevoked = accessID
	return s.revokeErr
}

type stubCartEvictor struct {
	evicted []string
}

func (s *stubCartEvictor) Evict(userID string) {
	s.evicted = append(s.evicted, userID)
}

func mintSessionToken(t *testing.T, cfg config.JWTConfig) (string, string, uuid.UUID) {
	t.Helper()
	accessID := session.NewAccessID()
	userID := uuid.New()
	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		UserID: userID,
		Email:  "cliente@frescapp.test",
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	return token, accessID, userID
}

func TestAuthLogout(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	manager := &stubSessionTokenManager{}
	evictor := &stubCartEvictor{}
	handler := AuthLogout(manager, evictor, cfg, nil)

	token, jti, userID := mintSessionToken(t, cfg)
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if manager.lastRevoked != jti {
		t.Fatalf("expected revoked %s got %s", jti, manager.lastRevoked)
	}
	if len(evictor.evicted) != 1 || evictor.evicted[0] != userID.String() {
		t.Fatalf("expected cart evicted for %s got %v", userID, evictor.evicted)
	}
}

func TestAuthRefresh(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	manager := &stubSessionTokenManager{
		rotateRespID:  "new-jti",
		rotateRespTok: "new-refresh",
	}
	handler := AuthRefresh(manager, cfg, nil)

	token, jti, _ := mintSessionToken(t, cfg)
	body := `{"refresh_token":"old-refresh"}`
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if manager.lastRotateOld != jti {
		t.Fatalf("expected rotate old %s got %s", jti, manager.lastRotateOld)
	}
	var envelope struct {
		Data refreshResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RefreshToken != "new-refresh" {
		t.Fatalf("expected refresh token new-refresh got %s", envelope.Data.RefreshToken)
	}
	if envelope.Data.AccessToken == "" {
		t.Fatalf("expected access token in body")
	}
}

func TestAuthRefreshInvalidToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	manager := &stubSessionTokenManager{
		rotateErr: session.ErrInvalidRefreshToken,
	}
	handler := AuthRefresh(manager, cfg, nil)

	token, _, _ := mintSessionToken(t, cfg)
	body := `{"refresh_token":"old-refresh"}`
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthLogoutMissingToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	handler := AuthLogout(&stubSessionTokenManager{}, nil, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
