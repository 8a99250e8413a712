package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storeroomlabs/storeroom/internal/checkout"
	"github.com/storeroomlabs/storeroom/internal/config"
	"github.com/storeroomlabs/storeroom/internal/database"
	"github.com/storeroomlabs/storeroom/internal/database/postgres"
	"github.com/storeroomlabs/storeroom/internal/event"
	"github.com/storeroomlabs/storeroom/internal/handler"
	"github.com/storeroomlabs/storeroom/internal/metrics"
	"github.com/storeroomlabs/storeroom/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	handler.InitValidator()

	pool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections, 5*time.Minute, 30*time.Minute)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	inventoryRepo := postgres.NewInventoryRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	checkoutRepo := postgres.NewCheckoutRepository(pool)

	bus := event.NewMemoryBus()
	metrics.RegisterEventHandlers(bus)

	checkoutService := checkout.NewService(inventoryRepo, cartRepo, checkoutRepo, bus)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, checkoutService)

	// Run the server and wait for a shutdown signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Server stopped")
	}
}
