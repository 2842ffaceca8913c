// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package api

import (
	"net/http"
	"time"

	"github.com/estateiq/estateiq/internal/analytics"
	"github.com/estateiq/estateiq/internal/cache"
	"github.com/estateiq/estateiq/internal/metrics"
	"github.com/estateiq/estateiq/internal/models"
	"github.com/estateiq/estateiq/internal/query"
)

// requireAnalytics answers the common unavailable case. The analytics sidecar
// is optional; when it never started, every analytics endpoint reports 503
// with the taxonomy code instead of panicking on a nil store.
func (h *Handler) requireAnalytics(w http.ResponseWriter) bool {
	if h.analytics == nil {
		respondError(w, http.StatusServiceUnavailable, query.CodeArtifactUnavailable,
			"Analytics store is unavailable", nil)
		return false
	}
	return true
}

// serveCached runs the query through the TTL cache. The fetch closure is only
// invoked on a miss; hits are replayed as cached responses.
func (h *Handler) serveCached(w http.ResponseWriter, key string, start time.Time,
	fetch func() (interface{}, error)) {

	if data, found := h.cache.Get(key); found {
		metrics.CacheHits.Inc()
		resp := models.NewSuccessResponse(data, time.Since(start), true)
		respondJSON(w, http.StatusOK, &resp)
		return
	}
	metrics.CacheMisses.Inc()

	data, err := fetch()
	if err != nil {
		respondEngineError(w, err)
		return
	}

	h.cache.Set(key, data)
	resp := models.NewSuccessResponse(data, time.Since(start), false)
	respondJSON(w, http.StatusOK, &resp)
}

// Stats returns the market summary. GET /api/v1/analytics/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireAnalytics(w) {
		return
	}

	key := cache.GenerateKey("analytics.stats", nil)
	h.serveCached(w, key, start, func() (interface{}, error) {
		return h.analytics.Stats(r.Context())
	})
}

// Geomap returns per-sector aggregates with centroids.
// GET /api/v1/analytics/geomap
func (h *Handler) Geomap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireAnalytics(w) {
		return
	}

	key := cache.GenerateKey("analytics.geomap", nil)
	h.serveCached(w, key, start, func() (interface{}, error) {
		return h.analytics.SectorAggregates(r.Context())
	})
}

// AreaPrice returns the built-up-area versus price scatter, optionally
// filtered to one property type.
// GET /api/v1/analytics/area-price?property_type=flat
func (h *Handler) AreaPrice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireAnalytics(w) {
		return
	}

	propertyType := r.URL.Query().Get("property_type")
	if err := h.analytics.ValidatePropertyType(r.Context(), propertyType); err != nil {
		respondEngineError(w, err)
		return
	}

	key := cache.GenerateKey("analytics.area_price", propertyType)
	h.serveCached(w, key, start, func() (interface{}, error) {
		return h.analytics.AreaVersusPrice(r.Context(), propertyType)
	})
}

// BHK returns the bedroom-count distribution. GET /api/v1/analytics/bhk
func (h *Handler) BHK(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireAnalytics(w) {
		return
	}

	key := cache.GenerateKey("analytics.bhk", nil)
	h.serveCached(w, key, start, func() (interface{}, error) {
		return h.analytics.BHKDistribution(r.Context())
	})
}

// PriceDistribution returns the price series grouped by property type.
// GET /api/v1/analytics/price-distribution
func (h *Handler) PriceDistribution(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireAnalytics(w) {
		return
	}

	key := cache.GenerateKey("analytics.price_distribution", nil)
	h.serveCached(w, key, start, func() (interface{}, error) {
		return h.analytics.PriceDistribution(r.Context())
	})
}

// FeatureTerms returns the most frequent amenity tokens. Served from the
// feature text artifact rather than DuckDB, so it stays available while the
// sidecar is down. GET /api/v1/analytics/feature-terms?limit=50
func (h *Handler) FeatureTerms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	tokens := h.store.FeatureTerms()
	if tokens == nil {
		respondError(w, http.StatusServiceUnavailable, query.CodeArtifactUnavailable,
			"Feature text artifact is unavailable", nil)
		return
	}

	limit := getIntParam(r, "limit", 50)
	if limit < 1 {
		respondError(w, http.StatusBadRequest, query.CodeInvalidParameter,
			"limit must be >= 1", nil)
		return
	}

	key := cache.GenerateKey("analytics.feature_terms", limit)
	h.serveCached(w, key, start, func() (interface{}, error) {
		return analytics.TermFrequencies(tokens, limit), nil
	})
}
