package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/buyfrescapp/frescapp-backend/api/responses"
	"github.com/buyfrescapp/frescapp-backend/api/validators"
	orderssvc "github.com/buyfrescapp/frescapp-backend/internal/orders"
	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
)

type orderResponse struct {
	ID            uuid.UUID          `json:"id"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	AddressID     *uuid.UUID         `json:"address_id,omitempty"`
	SubtotalPesos int64              `json:"subtotal_pesos"`
	ItemCount     int                `json:"item_count"`
	Items         []lineItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type lineItemResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPricePesos int64     `json:"unit_price_pesos"`
	Quantity       int       `json:"quantity"`
	LineTotalPesos int64     `json:"line_total_pesos"`
}

func newOrderResponse(order models.Order) orderResponse {
	items := make([]lineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemResponse{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPricePesos: item.UnitPricePesos,
			Quantity:       item.Quantity,
			LineTotalPesos: item.LineTotalPesos,
		})
	}
	return orderResponse{
		ID:            order.ID,
		Status:        string(order.Status),
		PaymentMethod: string(order.PaymentMethod),
		AddressID:     order.AddressID,
		SubtotalPesos: order.SubtotalPesos,
		ItemCount:     order.ItemCount,
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}

// OrdersList returns the shopper's order history, newest first.
func OrdersList(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]orderResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, newOrderResponse(row))
		}
		responses.WriteSuccess(w, out)
	}
}

// OrderGet returns one order the shopper owns.
func OrderGet(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.UUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}
