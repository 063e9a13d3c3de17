package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront-backend/api/routes"
	authsvc "github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/pricing"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/kv"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	slot, closeSlot, err := openSlot(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open persistence slot", err)
		os.Exit(1)
	}
	defer closeSlot()

	registry := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(registry)

	catalogClient := catalog.NewClient(
		catalog.WithBaseURL(cfg.Catalog.BaseURL),
		catalog.WithTimeout(cfg.Catalog.Timeout),
	)

	cartStore, err := cart.NewStore(slot, logg)
	if err != nil {
		logg.Error(ctx, "failed to create cart store", err)
		os.Exit(1)
	}
	cartStore.LoadFromPersistence(ctx)

	engine := pricing.NewEngine(cfg.Pricing)
	ordersService := orders.NewService(cfg.Simulation.OrderDelay, logg, m)

	flow, err := checkout.NewFlow(cartStore, engine, ordersService, logg)
	if err != nil {
		logg.Error(ctx, "failed to create checkout flow", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(slot, cfg.JWT, cfg.Password, cfg.Simulation.AuthDelay, logg)
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Persistence.Normalized(),
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			slot,
			catalogClient,
			cartStore,
			flow,
			authService,
			ordersService,
			m,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront api stopped unexpectedly", err)
		os.Exit(1)
	}
}

// openSlot selects the persistence backend from config. The returned func
// releases whatever the backend holds open.
func openSlot(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kv.Store, func(), error) {
	switch cfg.Persistence.Normalized() {
	case "redis":
		client, err := kv.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}, nil
	case "memory":
		return kv.NewMemory(), func() {}, nil
	default:
		store, err := kv.NewSQLite(ctx, cfg.Persistence, logg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logg.Error(ctx, "error closing sqlite", err)
			}
		}, nil
	}
}
