// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package recommend ranks similar properties by combining three
// independently-trained similarity views with fixed weights.
package recommend

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/estateiq/estateiq/internal/artifact"
	"github.com/estateiq/estateiq/internal/logging"
	"github.com/estateiq/estateiq/internal/models"
	"github.com/estateiq/estateiq/internal/query"
)

// Fixed combination weights per similarity view. Calibration constants of
// the offline training step, not user-configurable.
const (
	weightLocation  = 0.5
	weightPriceSize = 0.8
	weightAmenity   = 1.0
)

// Engine serves top-N similar-property queries. Safe for concurrent use:
// the matrices are immutable and the combined matrix is published through
// sync.Once on first use.
type Engine struct {
	ids   []string
	index map[string]int

	simLocation  *artifact.SimilarityMatrix
	simPriceSize *artifact.SimilarityMatrix
	simAmenity   *artifact.SimilarityMatrix

	combineOnce sync.Once
	combined    [][]float64

	queries atomic.Int64
	log     zerolog.Logger
}

// NewEngine creates a recommender over the three validated similarity views,
// in weight order (location, price/size, amenity). Any nil matrix yields an
// engine that refuses all calls with query.ErrArtifactUnavailable.
func NewEngine(simLocation, simPriceSize, simAmenity *artifact.SimilarityMatrix) *Engine {
	e := &Engine{
		simLocation:  simLocation,
		simPriceSize: simPriceSize,
		simAmenity:   simAmenity,
		log:          logging.WithComponent("recommend"),
	}
	if e.Available() {
		e.ids = simLocation.PropertyIDs
		e.index = make(map[string]int, len(e.ids))
		for i, id := range e.ids {
			e.index[id] = i
		}
	}
	return e
}

// Available reports whether the recommendation subsystem loaded and passed
// consistency validation.
func (e *Engine) Available() bool {
	return e.simLocation != nil && e.simPriceSize != nil && e.simAmenity != nil
}

// Universe returns the shared property ordering, or nil when unavailable.
func (e *Engine) Universe() []string {
	return e.ids
}

// QueryCount returns the number of Recommend calls served.
func (e *Engine) QueryCount() int64 {
	return e.queries.Load()
}

// Recommend returns the topN most similar properties to propertyID,
// excluding the property itself. Results are ordered by non-increasing
// combined score; ties keep the original row order. Exactly
// min(topN, N-1) results are returned.
func (e *Engine) Recommend(propertyID string, topN int) ([]models.Recommendation, error) {
	if !e.Available() {
		return nil, fmt.Errorf("similarity matrices: %w", query.ErrArtifactUnavailable)
	}
	if topN < 1 {
		return nil, fmt.Errorf("%w: top_n must be >= 1, got %d", query.ErrInvalidParameter, topN)
	}

	idx, ok := e.index[propertyID]
	if !ok {
		return nil, fmt.Errorf("%w: property %q", query.ErrUnknownIdentifier, propertyID)
	}

	e.queries.Add(1)

	row := e.combinedMatrix()[idx]
	candidates := make([]models.Recommendation, 0, len(row)-1)
	for j, score := range row {
		if j == idx {
			// Self-similarity is always maximal and must not appear.
			continue
		}
		candidates = append(candidates, models.Recommendation{
			PropertyID: e.ids[j],
			Score:      score,
		})
	}

	// Stable keeps row order on ties, making results deterministic.
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})

	if topN < len(candidates) {
		candidates = candidates[:topN]
	}

	e.log.Debug().
		Str("property", propertyID).
		Int("top_n", topN).
		Int("returned", len(candidates)).
		Msg("recommendations computed")

	return candidates, nil
}

// combinedMatrix lazily computes the weighted combination of the three
// views. The inputs never change post-load, so the result is computed once
// and never invalidated.
func (e *Engine) combinedMatrix() [][]float64 {
	e.combineOnce.Do(func() {
		n := len(e.ids)
		combined := make([][]float64, n)
		for i := 0; i < n; i++ {
			row := make([]float64, n)
			l := e.simLocation.Scores[i]
			p := e.simPriceSize.Scores[i]
			a := e.simAmenity.Scores[i]
			for j := 0; j < n; j++ {
				row[j] = weightLocation*l[j] + weightPriceSize*p[j] + weightAmenity*a[j]
			}
			combined[i] = row
		}
		e.combined = combined
		e.log.Info().Int("properties", n).Msg("combined similarity matrix materialized")
	})
	return e.combined
}
