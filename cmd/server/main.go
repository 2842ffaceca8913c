// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package main is the entry point for the EstateIQ server.
//
// EstateIQ serves price valuation, similarity recommendations, and geo radius
// search over artifacts precomputed by an offline training job. The server
// initializes components in the following order:
//
//  1. Configuration: defaults, optional YAML file, environment (Koanf v2)
//  2. Artifact store: load the five precomputed artifacts, degrade per artifact
//  3. Engines: valuation, recommendation, geo search behind the query facade
//  4. Analytics (optional): DuckDB sidecar loaded from the visualization CSV
//  5. HTTP server: REST API under /api/v1, Prometheus metrics at /metrics
//
// A broken or missing artifact never aborts startup; the affected engine
// reports unavailable and the rest keep serving.
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests within the shutdown
// timeout, then closes the analytics database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/estateiq/estateiq/internal/analytics"
	"github.com/estateiq/estateiq/internal/api"
	"github.com/estateiq/estateiq/internal/artifact"
	"github.com/estateiq/estateiq/internal/cache"
	"github.com/estateiq/estateiq/internal/config"
	"github.com/estateiq/estateiq/internal/database"
	"github.com/estateiq/estateiq/internal/geosearch"
	"github.com/estateiq/estateiq/internal/logging"
	"github.com/estateiq/estateiq/internal/metrics"
	"github.com/estateiq/estateiq/internal/query"
	"github.com/estateiq/estateiq/internal/recommend"
	"github.com/estateiq/estateiq/internal/supervisor"
	"github.com/estateiq/estateiq/internal/supervisor/services"
	"github.com/estateiq/estateiq/internal/valuation"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
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
		Str("version", version).
		Str("artifacts_dir", cfg.Artifacts.Dir).
		Bool("analytics", cfg.Analytics.Enabled).
		Msg("Starting EstateIQ")

	// Load the precomputed artifacts. Load never fails the process; each
	// artifact degrades independently.
	store := artifact.NewStore(cfg.Artifacts)
	store.Load()

	status := store.Status()
	for name, reason := range status.Reasons {
		logging.Warn().Str("artifact", name).Str("reason", reason).Msg("Artifact unavailable")
	}

	// Wire the engines. Each engine tolerates nil artifacts and reports
	// unavailable instead.
	valuer := valuation.NewEngine(store.Pipeline())
	simLoc, simPrice, simAmenity := store.SimilarityMatrices()
	recommender := recommend.NewEngine(simLoc, simPrice, simAmenity)
	searcher := geosearch.NewEngine(store.Distance())
	facade := query.NewFacade(valuer, recommender, searcher, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional analytics sidecar. Failure here degrades only the analytics
	// endpoints.
	var db *database.DB
	var analyticsStore *analytics.Store
	if cfg.Analytics.Enabled {
		db, analyticsStore = initAnalytics(ctx, cfg)
		if db != nil {
			defer func() {
				if err := db.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing analytics database")
				}
			}()
		}
	} else {
		logging.Info().Msg("Analytics sidecar disabled")
	}

	avail := facade.Availability()
	metrics.SetEngineAvailability(avail.Valuation, avail.Recommend, avail.GeoSearch,
		analyticsStore != nil)

	responseCache := cache.New(cfg.Analytics.CacheTTL)
	handler := api.NewHandler(facade, store, analyticsStore, responseCache, cfg, version)
	router := api.SetupChi(handler, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	// Supervisor tree: HTTP server in the api layer, analytics keepalive in
	// the data layer.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	if db != nil {
		tree.AddDataService(services.NewDBPingService(db, 30*time.Second))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("EstateIQ stopped gracefully")
}

// initAnalytics opens DuckDB and loads the visualization dataset. Returns
// nils on failure so the caller serves without analytics.
func initAnalytics(ctx context.Context, cfg *config.Config) (*database.DB, *analytics.Store) {
	db, err := database.Open(ctx, cfg.Analytics)
	if err != nil {
		logging.Warn().Err(err).Msg("Analytics database unavailable, continuing without analytics")
		return nil, nil
	}

	csvPath := filepath.Join(cfg.Artifacts.Dir, cfg.Artifacts.VizDataFile)
	analyticsStore, err := analytics.NewStore(ctx, db, csvPath)
	if err != nil {
		logging.Warn().Err(err).Msg("Analytics dataset failed to load, continuing without analytics")
		if closeErr := db.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing analytics database")
		}
		return nil, nil
	}

	return db, analyticsStore
}
