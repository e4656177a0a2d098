package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/buyfrescapp/frescapp-backend/api/responses"
	"github.com/buyfrescapp/frescapp-backend/api/validators"
	checkoutsvc "github.com/buyfrescapp/frescapp-backend/internal/checkout"
	"github.com/buyfrescapp/frescapp-backend/internal/checkout/payments"
	"github.com/buyfrescapp/frescapp-backend/pkg/enums"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
)

type checkoutRequest struct {
	AddressID     *uuid.UUID          `json:"address_id,omitempty" validate:"omitempty,uuid4"`
	PaymentMethod string              `json:"payment_method" validate:"required"`
	Card          *payments.CardInput `json:"card,omitempty"`
}

// Checkout submits the shopper's cart as an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
		if idempotencyKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header required"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		confirmation, err := svc.Submit(r.Context(), checkoutsvc.SubmitRequest{
			UserID:         userID,
			AddressID:      payload.AddressID,
			PaymentMethod:  method,
			Card:           payload.Card,
			IdempotencyKey: idempotencyKey,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}

// CheckoutPhase reports where the shopper's checkout session currently sits.
func CheckoutPhase(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"phase": string(svc.Phase(userID))})
	}
}

// CheckoutClose acknowledges the confirmation screen after a successful order.
func CheckoutClose(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Close(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"phase": string(svc.Phase(userID))})
	}
}
