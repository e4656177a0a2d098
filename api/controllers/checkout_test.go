package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/buyfrescapp/frescapp-backend/internal/checkout"
	"github.com/buyfrescapp/frescapp-backend/pkg/enums"
)

type stubCheckoutService struct {
	confirmation checkoutsvc.Confirmation
	submitErr    error
	lastRequest  checkoutsvc.SubmitRequest
	phase        enums.CheckoutPhase
	closed       []uuid.UUID
}

func (s *stubCheckoutService) Submit(_ context.Context, req checkoutsvc.SubmitRequest) (checkoutsvc.Confirmation, error) {
	s.lastRequest = req
	return s.confirmation, s.submitErr
}

func (s *stubCheckoutService) Phase(uuid.UUID) enums.CheckoutPhase {
	return s.phase
}

func (s *stubCheckoutService) Close(_ context.Context, userID uuid.UUID) error {
	s.closed = append(s.closed, userID)
	return nil
}

func TestCheckoutRequiresIdempotencyKey(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := Checkout(svc, nil)

	body := bytes.NewBufferString(`{"payment_method":"cash"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout", body, uuid.New()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCheckoutSubmitsOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	svc := &stubCheckoutService{confirmation: checkoutsvc.Confirmation{
		OrderID:       orderID,
		Status:        enums.OrderStatusPlaced,
		SubtotalPesos: 150000,
		ItemCount:     4,
	}}
	handler := Checkout(svc, nil)

	body := bytes.NewBufferString(`{"payment_method":"cash"}`)
	req := authedRequest(http.MethodPost, "/checkout", body, userID)
	req.Header.Set("Idempotency-Key", "key-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if svc.lastRequest.UserID != userID {
		t.Fatalf("expected user %s got %s", userID, svc.lastRequest.UserID)
	}
	if svc.lastRequest.PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("expected cash got %s", svc.lastRequest.PaymentMethod)
	}
	if svc.lastRequest.IdempotencyKey != "key-1" {
		t.Fatalf("expected idempotency key key-1 got %s", svc.lastRequest.IdempotencyKey)
	}

	var envelope struct {
		Data checkoutsvc.Confirmation `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderID != orderID {
		t.Fatalf("expected order %s got %s", orderID, envelope.Data.OrderID)
	}
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := Checkout(svc, nil)

	body := bytes.NewBufferString(`{"payment_method":"crypto"}`)
	req := authedRequest(http.MethodPost, "/checkout", body, uuid.New())
	req.Header.Set("Idempotency-Key", "key-2")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCheckoutPhaseAndClose(t *testing.T) {
	userID := uuid.New()
	svc := &stubCheckoutService{phase: enums.CheckoutPhaseSuccess}

	rec := httptest.NewRecorder()
	CheckoutPhase(svc, nil).ServeHTTP(rec, authedRequest(http.MethodGet, "/checkout/phase", nil, userID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["phase"] != string(enums.CheckoutPhaseSuccess) {
		t.Fatalf("expected success phase got %s", envelope.Data["phase"])
	}

	rec = httptest.NewRecorder()
	CheckoutClose(svc, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/checkout/close", nil, userID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(svc.closed) != 1 || svc.closed[0] != userID {
		t.Fatalf("expected close for %s got %v", userID, svc.closed)
	}
}
