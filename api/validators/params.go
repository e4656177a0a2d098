package validators

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/google/uuid"
)

// UUIDParam extracts and parses a UUID path parameter.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, name+" must be a valid uuid")
	}
	return id, nil
}
