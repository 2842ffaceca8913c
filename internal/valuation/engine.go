// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package valuation derives price ranges from the trained regression
// pipeline. Estimation is a pure function of the pipeline and the input
// record; identical inputs always produce identical output.
package valuation

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/estateiq/estateiq/internal/artifact"
	"github.com/estateiq/estateiq/internal/logging"
	"github.com/estateiq/estateiq/internal/models"
	"github.com/estateiq/estateiq/internal/query"
)

const (
	// bandHalfWidth is the symmetric confidence band around the point
	// estimate, in crores. A calibration constant of the trained model,
	// not user-configurable.
	bandHalfWidth = 0.22

	// priceFloor keeps the low bound strictly positive.
	priceFloor = 0.01
)

// Engine produces price range estimates. Safe for concurrent use; it never
// mutates the pipeline.
type Engine struct {
	pipeline *artifact.Pipeline
	log      zerolog.Logger
}

// NewEngine creates a valuation engine over the loaded pipeline. A nil
// pipeline yields an engine that refuses all calls with
// query.ErrArtifactUnavailable.
func NewEngine(pipeline *artifact.Pipeline) *Engine {
	return &Engine{
		pipeline: pipeline,
		log:      logging.WithComponent("valuation"),
	}
}

// Available reports whether the backing pipeline loaded.
func (e *Engine) Available() bool {
	return e.pipeline != nil
}

// Estimate predicts a price range in crores for the given record.
//
// The record is turned into a feature vector in the exact trained column
// order, the pipeline predicts in log-price space, and the inverse transform
// (expm1) recovers the price. The returned range always satisfies
// low <= point <= high and low > 0.
func (e *Engine) Estimate(rec models.PropertyRecord) (models.PriceRange, error) {
	if e.pipeline == nil {
		return models.PriceRange{}, fmt.Errorf("valuation pipeline: %w", query.ErrArtifactUnavailable)
	}

	if err := validateRecord(rec); err != nil {
		return models.PriceRange{}, err
	}

	vector, err := e.buildVector(rec)
	if err != nil {
		return models.PriceRange{}, err
	}

	logPrice, err := e.pipeline.Predict(vector)
	if err != nil {
		return models.PriceRange{}, fmt.Errorf("%w: %v", query.ErrPredictionFailure, err)
	}

	point := math.Expm1(logPrice)
	if point <= 0 || math.IsNaN(point) || math.IsInf(point, 0) {
		return models.PriceRange{}, fmt.Errorf("%w: non-positive price %g", query.ErrPredictionFailure, point)
	}

	low := point - bandHalfWidth
	if low < priceFloor {
		low = priceFloor
	}
	if low > point {
		low = point
	}
	high := point + bandHalfWidth

	e.log.Debug().
		Float64("log_price", logPrice).
		Float64("point", point).
		Msg("estimate computed")

	return models.PriceRange{
		Point:          point,
		Low:            low,
		High:           high,
		FormattedRange: fmt.Sprintf("₹ %.2f Cr - ₹ %.2f Cr", low, high),
	}, nil
}

// validateRecord rejects malformed inputs before any artifact is touched.
// Vocabulary membership is not checked here; the pipeline enforces it.
func validateRecord(rec models.PropertyRecord) error {
	categoricals := map[string]string{
		"property_type":       rec.PropertyType,
		"sector":              rec.Sector,
		"balcony_count":       rec.BalconyCount,
		"property_age_bucket": rec.PropertyAgeBucket,
		"furnishing_type":     rec.FurnishingType,
		"luxury_category":     rec.LuxuryCategory,
		"floor_category":      rec.FloorCategory,
	}
	for field, v := range categoricals {
		if v == "" {
			return fmt.Errorf("%w: %s must not be empty", query.ErrInvalidParameter, field)
		}
	}

	numerics := map[string]float64{
		"bedroom_count":  rec.BedroomCount,
		"bathroom_count": rec.BathroomCount,
		"built_up_area":  rec.BuiltUpArea,
		"servant_room":   rec.ServantRoom,
		"store_room":     rec.StoreRoom,
	}
	for field, v := range numerics {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s must be finite and non-negative", query.ErrInvalidParameter, field)
		}
	}

	return nil
}

// buildVector assembles the ordered feature vector the pipeline expects.
// Column order comes from the pipeline schema, never from this package.
func (e *Engine) buildVector(rec models.PropertyRecord) ([]artifact.FeatureValue, error) {
	vector := make([]artifact.FeatureValue, 0, len(e.pipeline.Columns))
	for _, col := range e.pipeline.Columns {
		fv, ok := featureFor(col.Name, rec)
		if !ok {
			return nil, fmt.Errorf("%w: schema column %q has no source field",
				query.ErrPredictionFailure, col.Name)
		}
		vector = append(vector, fv)
	}
	return vector, nil
}

// featureFor maps one trained column name to its value in the record.
func featureFor(column string, rec models.PropertyRecord) (artifact.FeatureValue, bool) {
	switch column {
	case "property_type":
		return artifact.FeatureValue{Category: rec.PropertyType}, true
	case "sector":
		return artifact.FeatureValue{Category: rec.Sector}, true
	case "bedRoom":
		return artifact.FeatureValue{Number: rec.BedroomCount}, true
	case "bathroom":
		return artifact.FeatureValue{Number: rec.BathroomCount}, true
	case "balcony":
		return artifact.FeatureValue{Category: rec.BalconyCount}, true
	case "agePossession":
		return artifact.FeatureValue{Category: rec.PropertyAgeBucket}, true
	case "built_up_area":
		return artifact.FeatureValue{Number: rec.BuiltUpArea}, true
	case "servant room":
		return artifact.FeatureValue{Number: rec.ServantRoom}, true
	case "store room":
		return artifact.FeatureValue{Number: rec.StoreRoom}, true
	case "furnishing_type":
		return artifact.FeatureValue{Category: rec.FurnishingType}, true
	case "luxury_category":
		return artifact.FeatureValue{Category: rec.LuxuryCategory}, true
	case "floor_category":
		return artifact.FeatureValue{Category: rec.FloorCategory}, true
	default:
		return artifact.FeatureValue{}, false
	}
}
