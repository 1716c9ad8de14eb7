// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Fieldfeed server: personalized feed ranking and cursor pagination for a
// farmer community network.
//
// The server exposes a REST API for feed retrieval, content ingestion,
// engagement events, and viewer preferences:
//
//	GET    /api/v1/feed
//	POST   /api/v1/content
//	GET    /api/v1/content/{id}
//	DELETE /api/v1/content/{id}
//	POST   /api/v1/content/{id}/engagement
//	PUT    /api/v1/viewers/{id}/profile
//	PUT    /api/v1/viewers/{id}/exclusions
//
// Configuration is layered: environment variables override an optional YAML
// config file, which overrides built-in defaults. See internal/config.
//
// # Quick Start
//
//	DUCKDB_PATH=:memory: PREFS_IN_MEMORY=true fieldfeed
//
// Docker:
//
//	docker run -d \
//	  -v fieldfeed-data:/data \
//	  -p 8460:8460 \
//	  ghcr.io/tomtom215/fieldfeed
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/fieldfeed/internal/api"
	"github.com/tomtom215/fieldfeed/internal/config"
	"github.com/tomtom215/fieldfeed/internal/database"
	"github.com/tomtom215/fieldfeed/internal/eventprocessor"
	"github.com/tomtom215/fieldfeed/internal/feed"
	"github.com/tomtom215/fieldfeed/internal/logging"
	"github.com/tomtom215/fieldfeed/internal/prefstore"
	"github.com/tomtom215/fieldfeed/internal/supervisor"
	"github.com/tomtom215/fieldfeed/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("prefs_path", cfg.Prefs.Path).
		Int("default_page_size", cfg.API.DefaultPageSize).
		Int("max_page_size", cfg.API.MaxPageSize).
		Msg("Starting Fieldfeed")

	// Content store (DuckDB)
	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize content store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing content store")
		}
	}()

	// Preference store (Badger): viewer profiles and exclusion sets
	prefs, err := prefstore.Open(&cfg.Prefs)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open preference store")
	}
	defer func() {
		if err := prefs.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing preference store")
		}
	}()

	// Engagement event pipeline: bus plus counter-applying processor
	bus := eventprocessor.NewBus(&cfg.Events)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	processor, err := eventprocessor.NewProcessor(&cfg.Events, bus, db)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create engagement processor")
	}

	// Feed ranking service over the content store and the (cached)
	// preference store
	cachedPrefs := prefstore.NewCached(prefs, cfg.Prefs.CacheSize, cfg.Prefs.CacheTTL)
	feedSvc := feed.NewService(db, cachedPrefs, cachedPrefs, feed.Limits{
		Default: cfg.API.DefaultPageSize,
		Max:     cfg.API.MaxPageSize,
	})

	handler := api.NewHandler(feedSvc, db, cachedPrefs, bus)
	router := api.NewRouter(&cfg.Server, handler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Supervisor tree; sutureslog wants an slog.Logger, so bridge zerolog.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewPrefsGCService(prefs, cfg.Prefs.GCInterval))
	tree.AddMessagingService(services.NewProcessorService(processor))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Fieldfeed stopped gracefully")
}
