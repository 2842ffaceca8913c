// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package models defines the shared data types exchanged between the artifact
// store, the query engines, and the HTTP layer.
package models

// PropertyRecord is one row of the property feature table, and doubles as the
// valuation request body. Categorical values must belong to the vocabulary the
// trained pipeline was fit on; membership is enforced by the pipeline itself
// at predict time, not here.
type PropertyRecord struct {
	PropertyType      string  `json:"property_type" validate:"required"`
	Sector            string  `json:"sector" validate:"required"`
	BedroomCount      float64 `json:"bedroom_count" validate:"gte=0"`
	BathroomCount     float64 `json:"bathroom_count" validate:"gte=0"`
	BalconyCount      string  `json:"balcony_count" validate:"required"`
	PropertyAgeBucket string  `json:"property_age_bucket" validate:"required"`
	BuiltUpArea       float64 `json:"built_up_area" validate:"gt=0"`
	ServantRoom       float64 `json:"servant_room" validate:"gte=0,lte=1"`
	StoreRoom         float64 `json:"store_room" validate:"gte=0,lte=1"`
	FurnishingType    string  `json:"furnishing_type" validate:"required"`
	LuxuryCategory    string  `json:"luxury_category" validate:"required"`
	FloorCategory     string  `json:"floor_category" validate:"required"`
}

// PriceRange is the valuation result: a point estimate in crores with a
// symmetric confidence band. Low <= Point <= High and Low > 0 always hold.
type PriceRange struct {
	Point          float64 `json:"point"`
	Low            float64 `json:"low"`
	High           float64 `json:"high"`
	FormattedRange string  `json:"formatted_range"`
}

// Recommendation pairs a property identifier with its combined similarity
// score relative to the query property.
type Recommendation struct {
	PropertyID string  `json:"property_id"`
	Score      float64 `json:"score"`
}

// GeoMatch is one radius-search hit: a property and its distance from the
// reference location in kilometers.
type GeoMatch struct {
	PropertyID string  `json:"property_id"`
	DistanceKM float64 `json:"distance_km"`
}

// PredictionOptions lists the vocabularies the prediction form can offer.
type PredictionOptions struct {
	PropertyTypes      []string  `json:"property_types"`
	Sectors            []string  `json:"sectors"`
	BedroomCounts      []float64 `json:"bedroom_counts"`
	BathroomCounts     []float64 `json:"bathroom_counts"`
	BalconyCounts      []string  `json:"balcony_counts"`
	PropertyAgeBuckets []string  `json:"property_age_buckets"`
	FurnishingTypes    []string  `json:"furnishing_types"`
	LuxuryCategories   []string  `json:"luxury_categories"`
	FloorCategories    []string  `json:"floor_categories"`
}

// RecommenderOptions lists the selectable apartments and reference locations.
type RecommenderOptions struct {
	Apartments []string `json:"apartments"`
	Locations  []string `json:"locations"`
}
