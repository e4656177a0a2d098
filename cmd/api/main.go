package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/buyfrescapp/frescapp-backend/api/routes"
	addresssvc "github.com/buyfrescapp/frescapp-backend/internal/address"
	authsvc "github.com/buyfrescapp/frescapp-backend/internal/auth"
	cartsvc "github.com/buyfrescapp/frescapp-backend/internal/cart"
	"github.com/buyfrescapp/frescapp-backend/internal/catalog"
	chatbotsvc "github.com/buyfrescapp/frescapp-backend/internal/chatbot"
	checkoutsvc "github.com/buyfrescapp/frescapp-backend/internal/checkout"
	"github.com/buyfrescapp/frescapp-backend/internal/checkout/payments"
	orderssvc "github.com/buyfrescapp/frescapp-backend/internal/orders"
	"github.com/buyfrescapp/frescapp-backend/internal/upsell"
	userssvc "github.com/buyfrescapp/frescapp-backend/internal/users"
	"github.com/buyfrescapp/frescapp-backend/pkg/auth/session"
	"github.com/buyfrescapp/frescapp-backend/pkg/config"
	"github.com/buyfrescapp/frescapp-backend/pkg/db"
	"github.com/buyfrescapp/frescapp-backend/pkg/logger"
	"github.com/buyfrescapp/frescapp-backend/pkg/metrics"
	"github.com/buyfrescapp/frescapp-backend/pkg/migrate"
	"github.com/buyfrescapp/frescapp-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	snapshots, err := cartsvc.NewRedisSnapshots(redisClient, cfg.Cart.SnapshotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart snapshots", err)
		os.Exit(1)
	}
	cartStore := cartsvc.NewStore(snapshots, logg)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Store:        cartStore,
		Catalog:      catalogService,
		MinimumPesos: cfg.Checkout.MinOrderPesos,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	addressService, err := addresssvc.NewService(addresssvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	ordersRepo := orderssvc.NewRepository(dbClient.DB())
	ordersService, err := orderssvc.NewService(ordersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Cart:      cartService,
		Addresses: addressService,
		Orders:    ordersRepo,
		Gateway:   payments.NewSimulatedGateway(cfg.Checkout.GatewayDelay),
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	upsellPicker, err := upsell.NewPicker(catalogService, cfg.Cart.UpsellCount, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create upsell picker", err)
		os.Exit(1)
	}

	chatbotService, err := chatbotsvc.NewService(chatbotsvc.NewRepository(dbClient.DB()), catalogService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create chatbot service", err)
		os.Exit(1)
	}

	usersRepo := userssvc.NewRepository(dbClient.DB())
	usersService, err := userssvc.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		HydrateCart: func(ctx context.Context, userID string) {
			cartStore.Hydrate(ctx, userID)
		},
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		SessionManager: sessionManager,
		CartStore:      cartStore,
		Metrics:        metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		Auth:           authService,
		Users:          usersService,
		Catalog:        catalogService,
		Cart:           cartService,
		Upsell:         upsellPicker,
		Checkout:       checkoutService,
		Address:        addressService,
		Orders:         ordersService,
		Chatbot:        chatbotService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
	}

	logg.Info(ctx, "api server stopped")
}
