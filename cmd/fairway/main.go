package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"fairway/internal/api"
	"fairway/internal/cli"
	apphttp "fairway/internal/http"
	"fairway/internal/services"
	"fairway/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	recordStore := store.New()
	client := api.NewClient(cfg.APIBaseURL, nil)
	controller := services.NewSyncController(client, recordStore)

	// Best-effort initial load; the dashboard starts empty if the API is
	// down and the periodic refresh catches up later.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := controller.Refresh(startupCtx); err != nil {
		logger.Warn("Initial refresh failed", "error", err, "api_url", cfg.APIBaseURL)
	}
	startupCancel()

	srv := apphttp.NewServer(":"+cfg.Port, controller, recordStore)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	// Periodic refresh keeps the store aligned with the API.
	go func() {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := controller.Refresh(ctx); err != nil {
					logger.Error("Periodic refresh failed", "error", err)
				}
			}
		}
	}()

	logger.Info("Starting fairway dashboard", "port", cfg.Port, "api_url", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Dashboard stopped gracefully")
}
