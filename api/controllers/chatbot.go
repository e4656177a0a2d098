package controllers

import (
	"net/http"

	"github.com/buyfrescapp/frescapp-backend/api/responses"
	"github.com/buyfrescapp/frescapp-backend/api/validators"
	chatbotsvc "github.com/buyfrescapp/frescapp-backend/internal/chatbot"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
)

type chatMessageRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}

// ChatbotGreeting returns the assistant's opening message.
func ChatbotGreeting(svc chatbotsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chatbot service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Greeting())
	}
}

// ChatbotMessage answers one shopper message.
func ChatbotMessage(svc chatbotsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chatbot service unavailable"))
			return
		}

		var body chatMessageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reply, err := svc.Respond(r.Context(), body.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reply)
	}
}
