package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/csvingest/internal/config"
	"github.com/JonMunkholm/csvingest/internal/core"
	_ "github.com/JonMunkholm/csvingest/internal/core/datasets" // Register all datasets
	"github.com/JonMunkholm/csvingest/internal/logging"
	"github.com/JonMunkholm/csvingest/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"ingest_max_file_size", cfg.Ingest.MaxFileSize,
		"ingest_max_concurrent", cfg.Ingest.MaxConcurrent,
		"default_encoding", cfg.Ingest.DefaultEncoding,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	service, err := core.NewService(core.ServiceOptions{
		MaxFileSize:     cfg.Ingest.MaxFileSize,
		MaxConcurrent:   cfg.Ingest.MaxConcurrent,
		MaxWaitTime:     cfg.Ingest.MaxWaitTime,
		DefaultEncoding: cfg.Ingest.DefaultEncoding,
	})
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	slog.Info("datasets registered", "count", core.DatasetCount())
	for _, ds := range core.All() {
		slog.Debug("dataset", "key", ds.Key, "columns", ds.RequiredColumns)
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Stop accepting new requests first, then let in-flight ingests finish.
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		if status := service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for ingests to complete", "active", status.Active)
			if err := service.WaitForIngests(shutdownCtx); err != nil {
				slog.Warn("ingests did not complete in time", "error", err)
			} else {
				slog.Info("all ingests completed")
			}
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}
