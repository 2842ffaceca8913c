// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package api implements the HTTP surface: the core query endpoints backed by
// the query facade, the analytics endpoints backed by DuckDB, and the health
// and options endpoints.
package api

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/estateiq/estateiq/internal/analytics"
	"github.com/estateiq/estateiq/internal/artifact"
	"github.com/estateiq/estateiq/internal/cache"
	"github.com/estateiq/estateiq/internal/config"
	"github.com/estateiq/estateiq/internal/logging"
	"github.com/estateiq/estateiq/internal/query"
)

// Handler holds the dependencies for all HTTP handlers. The analytics store
// may be nil when the sidecar failed to start; its endpoints then answer 503
// while the core endpoints keep serving.
type Handler struct {
	facade    *query.Facade
	store     *artifact.Store
	analytics *analytics.Store
	cache     *cache.Cache
	cfg       *config.Config
	log       zerolog.Logger
	startTime time.Time
	version   string
}

// NewHandler creates the handler set.
func NewHandler(
	facade *query.Facade,
	store *artifact.Store,
	analyticsStore *analytics.Store,
	responseCache *cache.Cache,
	cfg *config.Config,
	version string,
) *Handler {
	return &Handler{
		facade:    facade,
		store:     store,
		analytics: analyticsStore,
		cache:     responseCache,
		cfg:       cfg,
		log:       logging.WithComponent("api"),
		startTime: time.Now(),
		version:   version,
	}
}
