// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/estateiq/estateiq/internal/config"
	"github.com/estateiq/estateiq/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so our middleware works with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func SetupChi(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order. RequestID runs
	// first so every later log line carries the ID.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.RequestLogger))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.API.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Core endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.API.RateLimitReqs, cfg.API.RateLimitWindow))
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/health", h.Health)
		r.Get("/options", h.Options)
		r.Post("/predict", h.Predict)
		r.Get("/recommend/options", h.RecommenderOptions)
		r.Get("/recommend/{property}", h.Recommend)
		r.Get("/search/{location}", h.Search)
	})

	// Analytics endpoints. Read-only cached aggregations get a more
	// permissive rate limit than the core endpoints.
	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.API.RateLimitReqs*4, cfg.API.RateLimitWindow))
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/stats", h.Stats)
		r.Get("/geomap", h.Geomap)
		r.Get("/area-price", h.AreaPrice)
		r.Get("/bhk", h.BHK)
		r.Get("/price-distribution", h.PriceDistribution)
		r.Get("/feature-terms", h.FeatureTerms)
	})

	// Prometheus metrics, outside the rate-limited groups so scrapes never
	// compete with client traffic.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
