package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chaitanya039/sales-dashboard-backend/config"
	"github.com/chaitanya039/sales-dashboard-backend/database"
	"github.com/chaitanya039/sales-dashboard-backend/metrics"
	"github.com/chaitanya039/sales-dashboard-backend/routes"
	"github.com/chaitanya039/sales-dashboard-backend/services"
	"github.com/chaitanya039/sales-dashboard-backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	utils.SetupLogger(cfg.LogLevel, cfg.LogColored, cfg.LogTimeFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	store, closeStore, err := database.Open(ctx, cfg)
	if err != nil {
		slog.Error("❌ [DB] store unavailable", "kind", cfg.StoreKind, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	m := metrics.New(true)
	app := routes.NewApp()

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		Sales:    services.NewSalesService(store, m, cfg.QueryTimeout),
		Store:    store,
		Registry: m.Registry,
	})

	go func() {
		<-ctx.Done()
		slog.Info("🛑 shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("🚀 server listening", "addr", cfg.Addr(), "store", cfg.StoreKind)
	if err := app.Listen(cfg.Addr()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
