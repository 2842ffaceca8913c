// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package analytics serves aggregate views of the market dataset from
// DuckDB. The store loads the visualization CSV once at startup via
// read_csv_auto and answers read-only aggregation queries after that. A
// failed load degrades only this subsystem; the three core engines are
// unaffected.
package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/estateiq/estateiq/internal/database"
	"github.com/estateiq/estateiq/internal/logging"
	"github.com/estateiq/estateiq/internal/models"
	"github.com/estateiq/estateiq/internal/query"
)

// Store answers analytics queries over the loaded dataset.
type Store struct {
	db  *database.DB
	log zerolog.Logger
}

// NewStore loads the visualization CSV into DuckDB and returns a ready
// store. The CSV columns are inferred by read_csv_auto; the properties
// table replaces any previous load.
func NewStore(ctx context.Context, db *database.DB, csvPath string) (*Store, error) {
	s := &Store{
		db:  db,
		log: logging.WithComponent("analytics"),
	}

	// read_csv_auto infers column types directly in DuckDB; no row-by-row
	// ingestion needed.
	stmt := fmt.Sprintf(
		`CREATE OR REPLACE TABLE properties AS SELECT * FROM read_csv_auto(%s)`,
		quoteLiteral(csvPath))
	if _, err := db.Conn().ExecContext(ctx, stmt); err != nil {
		return nil, fmt.Errorf("load analytics dataset: %w", err)
	}

	var rows int64
	if err := db.Conn().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM properties`).Scan(&rows); err != nil {
		return nil, fmt.Errorf("count analytics rows: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("analytics dataset is empty")
	}

	s.log.Info().Int64("rows", rows).Str("path", csvPath).Msg("analytics dataset loaded")
	return s, nil
}

// Stats returns the market summary.
func (s *Store) Stats(ctx context.Context) (models.MarketStats, error) {
	var stats models.MarketStats
	err := s.db.Conn().QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			AVG(price),
			MEDIAN(price),
			COUNT(DISTINCT sector)
		FROM properties`).Scan(
		&stats.TotalProperties,
		&stats.AveragePrice,
		&stats.MedianPrice,
		&stats.SectorCount,
	)
	if err != nil {
		return models.MarketStats{}, fmt.Errorf("stats query: %w", err)
	}
	return stats, nil
}

// SectorAggregates returns the per-sector means powering the geomap view.
func (s *Store) SectorAggregates(ctx context.Context) ([]models.SectorAggregate, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT
			sector,
			AVG(price),
			AVG(price_per_sqft),
			AVG(built_up_area),
			AVG(latitude),
			AVG(longitude),
			COUNT(*)
		FROM properties
		GROUP BY sector
		ORDER BY sector`)
	if err != nil {
		return nil, fmt.Errorf("geomap query: %w", err)
	}
	defer rows.Close()

	var out []models.SectorAggregate
	for rows.Next() {
		var agg models.SectorAggregate
		if err := rows.Scan(&agg.Sector, &agg.AvgPrice, &agg.AvgPricePerSqft,
			&agg.AvgBuiltUpArea, &agg.Latitude, &agg.Longitude, &agg.PropertyCount); err != nil {
			return nil, fmt.Errorf("geomap scan: %w", err)
		}
		out = append(out, agg)
	}
	return out, rows.Err()
}

// AreaVersusPrice returns the scatter series of built-up area against price,
// optionally filtered to one property type.
func (s *Store) AreaVersusPrice(ctx context.Context, propertyType string) ([]models.AreaPricePoint, error) {
	q := `
		SELECT built_up_area, price, property_type
		FROM properties`
	args := []interface{}{}
	if propertyType != "" {
		q += ` WHERE property_type = ?`
		args = append(args, propertyType)
	}
	q += ` ORDER BY built_up_area`

	rows, err := s.db.Conn().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("area-price query: %w", err)
	}
	defer rows.Close()

	var out []models.AreaPricePoint
	for rows.Next() {
		var p models.AreaPricePoint
		if err := rows.Scan(&p.BuiltUpArea, &p.Price, &p.PropertyType); err != nil {
			return nil, fmt.Errorf("area-price scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// BHKDistribution returns the bedroom-count distribution.
func (s *Store) BHKDistribution(ctx context.Context) ([]models.BHKShare, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT bedRoom, COUNT(*)
		FROM properties
		GROUP BY bedRoom
		ORDER BY bedRoom`)
	if err != nil {
		return nil, fmt.Errorf("bhk query: %w", err)
	}
	defer rows.Close()

	var out []models.BHKShare
	for rows.Next() {
		var share models.BHKShare
		if err := rows.Scan(&share.Bedrooms, &share.Count); err != nil {
			return nil, fmt.Errorf("bhk scan: %w", err)
		}
		out = append(out, share)
	}
	return out, rows.Err()
}

// PriceDistribution returns the raw price series grouped by property type.
func (s *Store) PriceDistribution(ctx context.Context) ([]models.PriceSeries, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT property_type, price
		FROM properties
		ORDER BY property_type, price`)
	if err != nil {
		return nil, fmt.Errorf("price distribution query: %w", err)
	}
	defer rows.Close()

	var out []models.PriceSeries
	byType := map[string]int{}
	for rows.Next() {
		var propertyType string
		var price float64
		if err := rows.Scan(&propertyType, &price); err != nil {
			return nil, fmt.Errorf("price distribution scan: %w", err)
		}
		idx, ok := byType[propertyType]
		if !ok {
			idx = len(out)
			byType[propertyType] = idx
			out = append(out, models.PriceSeries{PropertyType: propertyType})
		}
		out[idx].Prices = append(out[idx].Prices, price)
	}
	return out, rows.Err()
}

// ValidatePropertyType checks the area-price filter against the loaded
// vocabulary, keeping unknown filters in the shared error taxonomy.
func (s *Store) ValidatePropertyType(ctx context.Context, propertyType string) error {
	if propertyType == "" {
		return nil
	}
	var count int64
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM properties WHERE property_type = ?`, propertyType).Scan(&count)
	if err != nil {
		return fmt.Errorf("property type lookup: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: property_type %q", query.ErrUnknownIdentifier, propertyType)
	}
	return nil
}

// quoteLiteral wraps a string as a single-quoted SQL literal. Paths come
// from operator config, not request input; quoting guards against spaces
// and quotes in filenames.
func quoteLiteral(s string) string {
	out := make([]rune, 0, len(s)+2)
	out = append(out, '\'')
	for _, r := range s {
		if r == '\'' {
			out = append(out, '\'', '\'')
			continue
		}
		out = append(out, r)
	}
	return string(append(out, '\''))
}
