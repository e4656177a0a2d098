package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/buyfrescapp/frescapp-backend/api/responses"
	"github.com/buyfrescapp/frescapp-backend/api/validators"
	cartsvc "github.com/buyfrescapp/frescapp-backend/internal/cart"
	"github.com/buyfrescapp/frescapp-backend/internal/upsell"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
)

type addToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity,omitempty"`
}

// CartView returns the shopper's current cart summary.
func CartView(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.View(r.Context(), userID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartAdd puts a product in the cart, bumping quantity when it is already there.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addToCartRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Add(r.Context(), userID.String(), body.ProductID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

type cartLineOp func(ctx context.Context, userID string, productID uuid.UUID) (cartsvc.Summary, error)

func cartLineHandler(svc cartsvc.Service, logg *logger.Logger, op func(cartsvc.Service) cartLineOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.UUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := op(svc)(r.Context(), userID.String(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartIncrement bumps a cart line by one.
func CartIncrement(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineHandler(svc, logg, func(s cartsvc.Service) cartLineOp { return s.Increment })
}

// CartDecrement lowers a cart line by one, removing it at quantity one.
func CartDecrement(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineHandler(svc, logg, func(s cartsvc.Service) cartLineOp { return s.Decrement })
}

// CartRemove drops a line entirely.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineHandler(svc, logg, func(s cartsvc.Service) cartLineOp { return s.Remove })
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Clear(r.Context(), userID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartSuggestions returns upsell picks excluding whatever is already in the cart.
func CartSuggestions(svc cartsvc.Service, picker *upsell.Picker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || picker == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "upsell service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.View(r.Context(), userID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		exclude := make([]uuid.UUID, 0, len(summary.Items))
		for _, item := range summary.Items {
			exclude = append(exclude, item.ProductID)
		}

		suggestions, err := picker.Pick(r.Context(), exclude)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, suggestions)
	}
}
