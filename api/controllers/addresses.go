package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/buyfrescapp/frescapp-backend/api/responses"
	"github.com/buyfrescapp/frescapp-backend/api/validators"
	addresssvc "github.com/buyfrescapp/frescapp-backend/internal/address"
	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
)

type addressRequest struct {
	Label       string `json:"label" validate:"required,max=60"`
	AddressLine string `json:"address_line" validate:"required,max=200"`
}

type addressResponse struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	AddressLine string    `json:"address_line"`
	CreatedAt   time.Time `json:"created_at"`
}

func newAddressResponse(row models.Address) addressResponse {
	return addressResponse{
		ID:          row.ID,
		Label:       row.Label,
		AddressLine: row.AddressLine,
		CreatedAt:   row.CreatedAt,
	}
}

// AddressList returns the shopper's address book.
func AddressList(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
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

		out := make([]addressResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, newAddressResponse(row))
		}
		responses.WriteSuccess(w, out)
	}
}

// AddressCreate saves a new delivery address.
func AddressCreate(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addressRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Add(r.Context(), userID, body.Label, body.AddressLine)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newAddressResponse(row))
	}
}

// AddressUpdate rewrites an address the shopper owns.
func AddressUpdate(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addressID, err := validators.UUIDParam(r, "addressID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addressRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Update(r.Context(), userID, addressID, body.Label, body.AddressLine)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAddressResponse(row))
	}
}

// AddressDelete removes an address the shopper owns.
func AddressDelete(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addressID, err := validators.UUIDParam(r, "addressID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, addressID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
