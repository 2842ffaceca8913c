// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/estateiq/estateiq/internal/metrics"
	"github.com/estateiq/estateiq/internal/models"
	"github.com/estateiq/estateiq/internal/query"
)

// Predict estimates the price range for a property described in the request
// body. POST /api/v1/predict
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var record models.PropertyRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, query.CodeInvalidParameter,
			"Request body must be valid JSON", err)
		return
	}

	if apiErr := validateRequest(&record); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error:    apiErr,
		})
		return
	}

	estimate, err := h.facade.Estimate(record)
	if err != nil {
		metrics.RecordEngineQuery("valuation", query.ErrorCode(err))
		respondEngineError(w, err)
		return
	}

	metrics.RecordEngineQuery("valuation", "success")
	resp := models.NewSuccessResponse(estimate, time.Since(start), false)
	respondJSON(w, http.StatusOK, &resp)
}

// Recommend returns the most similar properties to the one named in the URL.
// GET /api/v1/recommend/{property}?top_n=5
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	propertyID := chi.URLParam(r, "property")
	topN := getIntParam(r, "top_n", h.cfg.API.DefaultTopN)
	if topN > h.cfg.API.MaxTopN {
		topN = h.cfg.API.MaxTopN
	}

	recs, err := h.facade.Recommend(propertyID, topN)
	if err != nil {
		metrics.RecordEngineQuery("recommend", query.ErrorCode(err))
		respondEngineError(w, err)
		return
	}

	metrics.RecordEngineQuery("recommend", "success")
	resp := models.NewSuccessResponse(map[string]interface{}{
		"property_id":     propertyID,
		"recommendations": recs,
	}, time.Since(start), false)
	respondJSON(w, http.StatusOK, &resp)
}

// Search lists properties within a radius of the named location, nearest
// first. GET /api/v1/search/{location}?radius_km=2.5
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	location := chi.URLParam(r, "location")
	radiusKM, ok := getFloatParam(r, "radius_km")
	if !ok {
		respondError(w, http.StatusBadRequest, query.CodeInvalidParameter,
			"radius_km query parameter is required and must be a number", nil)
		return
	}

	matches, err := h.facade.Search(location, radiusKM)
	if err != nil {
		metrics.RecordEngineQuery("geosearch", query.ErrorCode(err))
		respondEngineError(w, err)
		return
	}

	// An empty radius is a valid answer, not an error. Serialize as [].
	if matches == nil {
		matches = []models.GeoMatch{}
	}

	metrics.RecordEngineQuery("geosearch", "success")
	resp := models.NewSuccessResponse(map[string]interface{}{
		"location":  location,
		"radius_km": radiusKM,
		"matches":   matches,
	}, time.Since(start), false)
	respondJSON(w, http.StatusOK, &resp)
}
