// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package metrics exposes Prometheus instrumentation for the HTTP surface,
// the query engines, and the analytics cache. All collectors register
// through promauto on the default registry; promhttp serves them at
// /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency by method, endpoint and
	// status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estateiq_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPRequestsTotal counts requests by method, endpoint and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estateiq_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// ActiveRequests gauges in-flight HTTP requests.
	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "estateiq_http_active_requests",
			Help: "Number of in-flight HTTP requests",
		},
	)

	// EngineAvailable reports per-engine availability (1 = available).
	EngineAvailable = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "estateiq_engine_available",
			Help: "Engine availability after artifact load (1 = available)",
		},
		[]string{"engine"},
	)

	// EngineQueries counts queries served per engine and outcome.
	EngineQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estateiq_engine_queries_total",
			Help: "Engine queries by outcome",
		},
		[]string{"engine", "outcome"},
	)

	// CacheHits and CacheMisses count analytics cache effectiveness.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "estateiq_cache_hits_total",
			Help: "Analytics cache hits",
		},
	)
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "estateiq_cache_misses_total",
			Help: "Analytics cache misses",
		},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HTTPRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		ActiveRequests.Inc()
		return
	}
	ActiveRequests.Dec()
}

// SetEngineAvailability publishes the per-engine availability gauges once
// after artifact load.
func SetEngineAvailability(valuation, recommend, geosearch, analytics bool) {
	set := func(engine string, ok bool) {
		v := 0.0
		if ok {
			v = 1.0
		}
		EngineAvailable.WithLabelValues(engine).Set(v)
	}
	set("valuation", valuation)
	set("recommend", recommend)
	set("geosearch", geosearch)
	set("analytics", analytics)
}

// RecordEngineQuery counts one engine query with its outcome label
// ("success" or the taxonomy code).
func RecordEngineQuery(engine, outcome string) {
	EngineQueries.WithLabelValues(engine, outcome).Inc()
}
