package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/afuwah/electronics-backend/api/routes"
	cartsvc "github.com/afuwah/electronics-backend/internal/cart"
	"github.com/afuwah/electronics-backend/internal/snapshot"
	wishlistsvc "github.com/afuwah/electronics-backend/internal/wishlist"
	"github.com/afuwah/electronics-backend/pkg/config"
	"github.com/afuwah/electronics-backend/pkg/db"
	"github.com/afuwah/electronics-backend/pkg/logger"
	"github.com/afuwah/electronics-backend/pkg/metrics"
	"github.com/afuwah/electronics-backend/pkg/migrate"
	"github.com/afuwah/electronics-backend/pkg/redis"
)

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

	var closers []func() error
	defer func() {
		var errs error
		for _, closeFn := range closers {
			errs = multierr.Append(errs, closeFn())
		}
		if errs != nil {
			logg.Error(context.Background(), "error closing resources", errs)
		}
	}()

	snapshots, err := buildSnapshotStore(context.Background(), cfg, logg, &closers)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap snapshot store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	storefront := metrics.NewStorefrontMetrics(registry)

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Snapshots: snapshots,
		Namespace: cfg.Snapshot.Namespace,
		Logger:    logg,
		Metrics:   storefront,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlistsvc.NewService(wishlistsvc.ServiceParams{
		Snapshots: snapshots,
		Namespace: cfg.Snapshot.Namespace,
		Logger:    logg,
		Metrics:   storefront,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":              cfg.App.Env,
		"addr":             addr,
		"snapshot_backend": cfg.Snapshot.Backend,
	})
	logg.Info(ctx, "starting storefront api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, snapshots, cartService, wishlistService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// buildSnapshotStore bootstraps the configured snapshot backend and registers
// its close function with the caller's cleanup list.
func buildSnapshotStore(ctx context.Context, cfg *config.Config, logg *logger.Logger, closers *[]func() error) (snapshot.Store, error) {
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendRedis:
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, redisClient.Close)
		return snapshot.NewRedisStore(redisClient, cfg.Snapshot.RedisTTL)

	default:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, dbClient.Close)
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			return nil, err
		}
		return snapshot.NewDBStore(dbClient.DB())
	}
}
