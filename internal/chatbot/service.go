package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/buyfrescapp/frescapp-backend/internal/catalog"
	pkgerrors "github.com/buyfrescapp/frescapp-backend/pkg/errors"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
)

const (
	defaultReply = "No encontré productos con ese nombre."
	greeting     = "¡Hola! Soy tu asistente Frescapp. ¿Qué producto deseas buscar hoy?"
)

// Reply is the assistant's answer to one message.
type Reply struct {
	Text string `json:"text"`
}

// Service answers shopper messages with scripted FAQ replies or a product
// lookup. There is no model behind it; matching is plain keyword and name
// substring search.
type Service interface {
	Greeting() Reply
	Respond(ctx context.Context, message string) (Reply, error)
}

type service struct {
	repo    *Repository
	catalog catalog.Service
	logg    *logger.Logger
}

// NewService builds a chatbot service with the required dependencies.
func NewService(repo *Repository, catalogSvc catalog.Service, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chatbot repo is required")
	}
	if catalogSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog service is required")
	}
	return &service{repo: repo, catalog: catalogSvc, logg: logg}, nil
}

// Greeting returns the opening message shown when the chat is first opened.
func (s *service) Greeting() Reply {
	return Reply{Text: greeting}
}

// Respond matches the message against the scripted FAQ first, then falls
// back to a catalog name search. Unknown messages get the default reply.
func (s *service) Respond(ctx context.Context, message string) (Reply, error) {
	needle := strings.ToLower(strings.TrimSpace(message))
	if needle == "" {
		return Reply{Text: defaultReply}, nil
	}

	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		// FAQ lookup failures degrade to product search rather than
		// breaking the chat.
		if s.logg != nil {
			s.logg.Warn(ctx, "faq lookup failed: "+err.Error())
		}
	}
	for _, entry := range entries {
		for _, keyword := range entry.Keywords {
			if keyword != "" && strings.Contains(needle, strings.ToLower(keyword)) {
				return Reply{Text: entry.Reply}, nil
			}
		}
	}

	matches, err := s.catalog.Search(ctx, needle)
	if err != nil {
		return Reply{}, err
	}
	if len(matches) == 0 {
		return Reply{Text: defaultReply}, nil
	}

	var b strings.Builder
	b.WriteString("Aquí tienes lo que encontré:\n")
	for _, product := range matches {
		fmt.Fprintf(&b, "• %s: $%d\n", product.Name, product.PricePesos)
	}
	return Reply{Text: strings.TrimRight(b.String(), "\n")}, nil
}
