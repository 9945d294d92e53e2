package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/wadidirect/storefront-backend/api/controllers"
	"github.com/wadidirect/storefront-backend/api/routes"
	"github.com/wadidirect/storefront-backend/internal/cart"
	"github.com/wadidirect/storefront-backend/internal/catalog"
	"github.com/wadidirect/storefront-backend/internal/checkout"
	"github.com/wadidirect/storefront-backend/pkg/config"
	"github.com/wadidirect/storefront-backend/pkg/logger"
	"github.com/wadidirect/storefront-backend/pkg/metrics"
	"github.com/wadidirect/storefront-backend/pkg/redis"
)

const serviceName = "storefront-api"

func main() {
	bootLogg := logger.New(logger.Options{ServiceName: serviceName, Level: zerolog.InfoLevel})

	if err := godotenv.Load(); err != nil {
		bootLogg.Info(context.Background(), "no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		bootLogg.Error(context.Background(), "config.load_failed", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		cache       catalog.Cache
		cachePinger controllers.Pinger
	)
	if cfg.Redis.Enabled() {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "redis.connect_failed", err)
			os.Exit(1)
		}
		defer client.Close()
		cache = client
		cachePinger = client
		logg.Info(ctx, "redis.connected")
	} else {
		logg.Warn(ctx, "redis not configured, catalog cache disabled")
	}

	registry := prometheus.NewRegistry()
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	client := catalog.NewClient(cfg.Upstream)
	catalogSvc := catalog.NewService(catalog.ServiceParams{
		Client:     client,
		Cache:      cache,
		Logger:     logg,
		Metrics:    catalogMetrics,
		Categories: cfg.Catalog.Categories,
		CacheTTL:   cfg.Catalog.CacheTTL,
	})
	checkoutSvc := checkout.NewService(cfg.Checkout.ProcessingDelay, logg)

	cartRegistry := cart.NewRegistry(cfg.Cart.SessionTTL)
	go cartRegistry.Run(ctx, cfg.Cart.SweepInterval, logg)

	router := routes.NewRouter(routes.Params{
		Config:       cfg,
		Logger:       logg,
		Catalog:      catalogSvc,
		Checkout:     checkoutSvc,
		Forwarder:    client,
		CartRegistry: cartRegistry,
		CachePinger:  cachePinger,
		Gatherer:     registry,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "server.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server.failed", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(context.Background(), "server.shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(context.Background(), "server.shutdown_failed", err)
		}
	}
}
