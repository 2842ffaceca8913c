// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package geosearch answers radius-bounded location queries over the
// precomputed distance table.
package geosearch

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/estateiq/estateiq/internal/artifact"
	"github.com/estateiq/estateiq/internal/logging"
	"github.com/estateiq/estateiq/internal/models"
	"github.com/estateiq/estateiq/internal/query"
)

// Engine filters the distance table by radius. Safe for concurrent use; the
// table is immutable post-load.
type Engine struct {
	distance *artifact.DistanceTable
	log      zerolog.Logger
}

// NewEngine creates a geo search engine over the loaded distance table. A
// nil table yields an engine that refuses all calls with
// query.ErrArtifactUnavailable.
func NewEngine(distance *artifact.DistanceTable) *Engine {
	return &Engine{
		distance: distance,
		log:      logging.WithComponent("geosearch"),
	}
}

// Available reports whether the backing distance table loaded.
func (e *Engine) Available() bool {
	return e.distance != nil
}

// Locations returns the known reference location names, or nil when the
// table is unavailable.
func (e *Engine) Locations() []string {
	if e.distance == nil {
		return nil
	}
	return e.distance.Locations
}

// Search returns every property strictly closer than radiusKM to the given
// location, sorted ascending by distance. Distances are converted to
// kilometers and rounded to two decimals. A location with no qualifying
// properties returns an empty list, not an error.
//
// The table stores meters, so the threshold is radiusKM * 1000. Selection
// uses strict less-than: a property at exactly the radius is excluded.
func (e *Engine) Search(location string, radiusKM float64) ([]models.GeoMatch, error) {
	if e.distance == nil {
		return nil, fmt.Errorf("distance table: %w", query.ErrArtifactUnavailable)
	}
	if radiusKM <= 0 || math.IsNaN(radiusKM) || math.IsInf(radiusKM, 0) {
		return nil, fmt.Errorf("%w: radius_km must be positive and finite, got %g",
			query.ErrInvalidParameter, radiusKM)
	}

	col, ok := e.distance.LocationIndex(location)
	if !ok {
		return nil, fmt.Errorf("%w: location %q", query.ErrUnknownIdentifier, location)
	}

	type hit struct {
		id     string
		meters float64
	}

	thresholdMeters := radiusKM * 1000
	hits := make([]hit, 0)
	for row, id := range e.distance.PropertyIDs {
		meters := e.distance.Meters[row][col]
		if meters < thresholdMeters {
			hits = append(hits, hit{id: id, meters: meters})
		}
	}

	// Sort on the raw meter values; rounding happens only on output.
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].meters < hits[b].meters
	})

	matches := make([]models.GeoMatch, len(hits))
	for i, h := range hits {
		matches[i] = models.GeoMatch{
			PropertyID: h.id,
			DistanceKM: roundKM(h.meters / 1000),
		}
	}

	e.log.Debug().
		Str("location", location).
		Float64("radius_km", radiusKM).
		Int("matches", len(matches)).
		Msg("radius search computed")

	return matches, nil
}

// roundKM rounds to the documented two-decimal output precision.
func roundKM(km float64) float64 {
	return math.Round(km*100) / 100
}
