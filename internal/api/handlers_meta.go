// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package api

import (
	"net/http"
	"time"

	"github.com/estateiq/estateiq/internal/models"
)

// Health reports per-engine availability. The endpoint answers 200 while any
// engine can serve and 503 only when every subsystem is down, so partial
// degradation does not take the whole service out of rotation.
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	avail := h.facade.Availability()
	health := models.EngineHealth{
		Valuation: avail.Valuation,
		Recommend: avail.Recommend,
		GeoSearch: avail.GeoSearch,
		Analytics: h.analytics != nil,
		UptimeSec: int64(time.Since(h.startTime).Seconds()),
		Version:   h.version,
	}

	status := http.StatusOK
	if !health.Valuation && !health.Recommend && !health.GeoSearch && !health.Analytics {
		status = http.StatusServiceUnavailable
	}

	resp := models.NewSuccessResponse(health, time.Since(start), false)
	respondJSON(w, status, &resp)
}

// Options returns the vocabularies for the prediction form.
// GET /api/v1/options
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	opts := h.facade.PredictionOptions()
	resp := models.NewSuccessResponse(opts, time.Since(start), false)
	respondJSON(w, http.StatusOK, &resp)
}

// RecommenderOptions returns the selectable apartments and locations.
// GET /api/v1/recommend/options
func (h *Handler) RecommenderOptions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	opts, err := h.facade.RecommenderOptions()
	if err != nil {
		respondEngineError(w, err)
		return
	}

	resp := models.NewSuccessResponse(opts, time.Since(start), false)
	respondJSON(w, http.StatusOK, &resp)
}
