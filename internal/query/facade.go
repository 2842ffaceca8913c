// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package query is the single entry surface the HTTP layer calls. It
// dispatches each external request to exactly one engine, reports per-engine
// availability, and defines the error taxonomy every engine resolves to.
package query

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/estateiq/estateiq/internal/artifact"
	"github.com/estateiq/estateiq/internal/logging"
	"github.com/estateiq/estateiq/internal/models"
)

// Valuer is the valuation engine surface the facade dispatches to.
type Valuer interface {
	Estimate(rec models.PropertyRecord) (models.PriceRange, error)
	Available() bool
}

// Recommender is the similarity recommender surface.
type Recommender interface {
	Recommend(propertyID string, topN int) ([]models.Recommendation, error)
	Universe() []string
	Available() bool
}

// Searcher is the geo radius search surface.
type Searcher interface {
	Search(location string, radiusKM float64) ([]models.GeoMatch, error)
	Locations() []string
	Available() bool
}

// Availability reports which engines can serve requests. Availability is
// per-engine, never a single global flag: valuation keeps working when the
// recommendation artifacts are missing, and vice versa.
type Availability struct {
	Valuation bool `json:"valuation"`
	Recommend bool `json:"recommend"`
	GeoSearch bool `json:"geosearch"`
}

// Facade dispatches external requests to the engines. Stateless per request
// and safe for concurrent use.
type Facade struct {
	valuer      Valuer
	recommender Recommender
	searcher    Searcher
	store       *artifact.Store
	log         zerolog.Logger
}

// NewFacade wires the three engines and the artifact store behind one entry
// surface.
func NewFacade(v Valuer, r Recommender, s Searcher, store *artifact.Store) *Facade {
	return &Facade{
		valuer:      v,
		recommender: r,
		searcher:    s,
		store:       store,
		log:         logging.WithComponent("query"),
	}
}

// Availability reports per-engine readiness.
func (f *Facade) Availability() Availability {
	return Availability{
		Valuation: f.valuer.Available(),
		Recommend: f.recommender.Available(),
		GeoSearch: f.searcher.Available(),
	}
}

// Estimate dispatches a valuation request.
func (f *Facade) Estimate(rec models.PropertyRecord) (models.PriceRange, error) {
	return f.valuer.Estimate(rec)
}

// Recommend dispatches a similarity request.
func (f *Facade) Recommend(propertyID string, topN int) ([]models.Recommendation, error) {
	return f.recommender.Recommend(propertyID, topN)
}

// Search dispatches a radius search request.
func (f *Facade) Search(location string, radiusKM float64) ([]models.GeoMatch, error) {
	return f.searcher.Search(location, radiusKM)
}

// PredictionOptions returns the vocabularies for the prediction form. When
// the property table is unavailable the documented fallback defaults are
// served instead; options are presentation data, not rankings, so degrading
// to defaults is safe here.
func (f *Facade) PredictionOptions() models.PredictionOptions {
	if table := f.store.Properties(); table != nil {
		return table.Options()
	}
	f.log.Warn().Msg("property table unavailable, serving fallback options")
	return artifact.DefaultOptions()
}

// RecommenderOptions returns the selectable apartments and locations, both
// sorted. Fails when the distance table is unavailable, since fabricated
// choices would all be rejected downstream.
func (f *Facade) RecommenderOptions() (models.RecommenderOptions, error) {
	distance := f.store.Distance()
	if distance == nil {
		return models.RecommenderOptions{}, fmt.Errorf("distance table: %w", ErrArtifactUnavailable)
	}

	apartments := append([]string(nil), distance.PropertyIDs...)
	locations := append([]string(nil), distance.Locations...)
	sort.Strings(apartments)
	sort.Strings(locations)

	return models.RecommenderOptions{
		Apartments: apartments,
		Locations:  locations,
	}, nil
}

// Error codes for the taxonomy, stable across releases.
const (
	CodeArtifactUnavailable = "ARTIFACT_UNAVAILABLE"
	CodeUnknownIdentifier   = "UNKNOWN_IDENTIFIER"
	CodeInvalidParameter    = "INVALID_PARAMETER"
	CodePredictionFailure   = "PREDICTION_FAILURE"
	CodeInternal            = "INTERNAL_ERROR"
)

// ErrorCode maps an engine error to its stable taxonomy code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrArtifactUnavailable):
		return CodeArtifactUnavailable
	case errors.Is(err, ErrUnknownIdentifier):
		return CodeUnknownIdentifier
	case errors.Is(err, ErrInvalidParameter):
		return CodeInvalidParameter
	case errors.Is(err, ErrPredictionFailure):
		return CodePredictionFailure
	default:
		return CodeInternal
	}
}
