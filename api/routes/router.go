package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buyfrescapp/frescapp-backend/api/controllers"
	"github.com/buyfrescapp/frescapp-backend/api/middleware"
	addresssvc "github.com/buyfrescapp/frescapp-backend/internal/address"
	authsvc "github.com/buyfrescapp/frescapp-backend/internal/auth"
	cartsvc "github.com/buyfrescapp/frescapp-backend/internal/cart"
	"github.com/buyfrescapp/frescapp-backend/internal/catalog"
	chatbotsvc "github.com/buyfrescapp/frescapp-backend/internal/chatbot"
	checkoutsvc "github.com/buyfrescapp/frescapp-backend/internal/checkout"
	orderssvc "github.com/buyfrescapp/frescapp-backend/internal/orders"
	"github.com/buyfrescapp/frescapp-backend/internal/upsell"
	userssvc "github.com/buyfrescapp/frescapp-backend/internal/users"
	"github.com/buyfrescapp/frescapp-backend/pkg/auth/session"
	"github.com/buyfrescapp/frescapp-backend/pkg/config"
	"github.com/buyfrescapp/frescapp-backend/pkg/db"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
	"github.com/buyfrescapp/frescapp-backend/pkg/metrics"
	"github.com/buyfrescapp/frescapp-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionManager sessionManager
	CartStore      *cartsvc.Store
	Metrics        *metrics.HTTPMetrics

	Auth     authsvc.Service
	Users    userssvc.Service
	Catalog  catalog.Service
	Cart     cartsvc.Service
	Upsell   *upsell.Picker
	Checkout checkoutsvc.Service
	Address  addresssvc.Service
	Orders   orderssvc.Service
	Chatbot  chatbotsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.Idempotency(deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, deps.CartStore, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/v1/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Catalog, logg))
			r.Get("/grouped", controllers.ProductsGrouped(deps.Catalog, logg))
			r.Get("/featured", controllers.ProductsFeatured(deps.Catalog, logg))
			r.Get("/{productID}", controllers.ProductGet(deps.Catalog, logg))
		})

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Post("/items", controllers.CartAdd(deps.Cart, logg))
			r.Post("/items/{productID}/increment", controllers.CartIncrement(deps.Cart, logg))
			r.Post("/items/{productID}/decrement", controllers.CartDecrement(deps.Cart, logg))
			r.Delete("/items/{productID}", controllers.CartRemove(deps.Cart, logg))
			r.Get("/suggestions", controllers.CartSuggestions(deps.Cart, deps.Upsell, logg))
		})

		r.Post("/v1/checkout", controllers.Checkout(deps.Checkout, logg))
		r.Get("/v1/checkout/phase", controllers.CheckoutPhase(deps.Checkout, logg))
		r.Post("/v1/checkout/close", controllers.CheckoutClose(deps.Checkout, logg))

		r.Route("/v1/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(deps.Address, logg))
			r.Post("/", controllers.AddressCreate(deps.Address, logg))
			r.Put("/{addressID}", controllers.AddressUpdate(deps.Address, logg))
			r.Delete("/{addressID}", controllers.AddressDelete(deps.Address, logg))
		})

		r.Route("/v1/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(deps.Users, logg))
			r.Put("/", controllers.ProfileUpdate(deps.Users, logg))
		})

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.Get("/{orderID}", controllers.OrderGet(deps.Orders, logg))
		})

		r.Route("/v1/chatbot", func(r chi.Router) {
			r.Get("/greeting", controllers.ChatbotGreeting(deps.Chatbot, logg))
			r.Post("/messages", controllers.ChatbotMessage(deps.Chatbot, logg))
		})
	})

	return r
}
