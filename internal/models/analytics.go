// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package models

// MarketStats summarizes the analytics dataset.
type MarketStats struct {
	TotalProperties int64   `json:"total_properties"`
	AveragePrice    float64 `json:"average_price"`
	MedianPrice     float64 `json:"median_price"`
	SectorCount     int64   `json:"sector_count"`
}

// SectorAggregate is one row of the geomap aggregation: per-sector means of
// the numeric columns plus the sector centroid.
type SectorAggregate struct {
	Sector          string  `json:"sector"`
	AvgPrice        float64 `json:"avg_price"`
	AvgPricePerSqft float64 `json:"avg_price_per_sqft"`
	AvgBuiltUpArea  float64 `json:"avg_built_up_area"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	PropertyCount   int64   `json:"property_count"`
}

// AreaPricePoint is one point of the built-up-area versus price scatter.
type AreaPricePoint struct {
	BuiltUpArea  float64 `json:"built_up_area"`
	Price        float64 `json:"price"`
	PropertyType string  `json:"property_type"`
}

// BHKShare is one slice of the bedroom-count distribution.
type BHKShare struct {
	Bedrooms float64 `json:"bedrooms"`
	Count    int64   `json:"count"`
}

// PriceSeries holds the raw price values for one property type, used by the
// price-distribution endpoint.
type PriceSeries struct {
	PropertyType string    `json:"property_type"`
	Prices       []float64 `json:"prices"`
}

// FeatureTerm is one amenity token with its corpus frequency.
type FeatureTerm struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// EngineHealth reports per-engine availability for the health endpoint.
type EngineHealth struct {
	Valuation bool   `json:"valuation"`
	Recommend bool   `json:"recommend"`
	GeoSearch bool   `json:"geosearch"`
	Analytics bool   `json:"analytics"`
	UptimeSec int64  `json:"uptime_sec"`
	Version   string `json:"version"`
}
