package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AusClimateService/gwls/internal/adapter/httpapi"
	"github.com/AusClimateService/gwls/internal/adapter/reference"
	"github.com/AusClimateService/gwls/internal/config"
	"github.com/AusClimateService/gwls/internal/lookup"
	"github.com/AusClimateService/gwls/internal/observability"
	"github.com/AusClimateService/gwls/internal/refresh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Document source: GitHub raw content, optionally backed by a local
	// checkout (SOURCE_LOCAL_DIR), optionally cached (DOC_CACHE_TTL).
	var source reference.Source = reference.NewGitHubSource(cfg.SourceBaseURL, cfg.SourceTimeout, logger, metrics)
	if cfg.SourceLocalDir != "" {
		local := reference.NewLocalSource(cfg.SourceLocalDir, logger, metrics)
		source = reference.NewFallback(source, local, logger)
		logger.Info("local reference fallback enabled", "dir", cfg.SourceLocalDir)
	}
	if cfg.DocCacheTTL > 0 {
		source = reference.NewCached(source, cfg.DocCacheTTL, metrics)
		logger.Info("document cache enabled", "ttl", cfg.DocCacheTTL)
	}

	service := lookup.NewService(source, logger, metrics)
	refresher := refresh.New(service, cfg.RefreshPhases, cfg.RefreshInterval, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, service, refresher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the table refresher. Readiness flips once its first cycle lands.
	go func() {
		if err := refresher.Run(ctx); err != nil {
			logger.Error("refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
