// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

// Package artifact owns the lifecycle of the five precomputed artifacts the
// query engines read: the property feature table, the trained regression
// pipeline, the location distance table, and three similarity matrices.
//
// Artifacts are loaded exactly once at startup and are immutable for the
// process lifetime. Each artifact loads independently; a failed load is
// recorded and the accessor returns nil so downstream engines can
// distinguish "no data" from an empty result. After loading, cross-artifact
// consistency is validated: the three similarity matrices and the distance
// table must agree on property count and ordering, otherwise the whole
// recommendation subsystem is marked unavailable (fail closed).
package artifact

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/estateiq/estateiq/internal/config"
	"github.com/estateiq/estateiq/internal/logging"
)

// Status reports per-artifact availability after Load. A false field carries
// its reason in Reasons, keyed by artifact name.
type Status struct {
	Properties  bool
	Pipeline    bool
	Distance    bool
	Similarity  bool // all three matrices loaded and mutually consistent
	FeatureText bool
	Reasons     map[string]string
}

// Store loads and holds the artifacts. All accessors are pure reads; the
// store is never mutated after Load returns, so concurrent readers need no
// locking.
type Store struct {
	cfg config.ArtifactsConfig
	log zerolog.Logger

	properties *PropertyTable
	pipeline   *Pipeline
	distance   *DistanceTable
	simLoc     *SimilarityMatrix
	simPrice   *SimilarityMatrix
	simAmenity *SimilarityMatrix
	terms      []string

	status Status
}

// NewStore creates an unloaded store for the given artifact locations.
func NewStore(cfg config.ArtifactsConfig) *Store {
	return &Store{
		cfg: cfg,
		log: logging.WithComponent("artifact"),
		status: Status{
			Reasons: make(map[string]string),
		},
	}
}

// Load attempts to deserialize each artifact independently, then validates
// cross-artifact consistency. Load never fails the process: a broken or
// missing artifact degrades only the engines that depend on it.
func (s *Store) Load() {
	dir := s.cfg.Dir

	if table, err := LoadPropertyTable(filepath.Join(dir, s.cfg.PropertiesFile)); err != nil {
		s.fail("properties", err)
	} else {
		s.properties = table
		s.status.Properties = true
		s.log.Info().Int("rows", len(table.Rows)).Msg("property table loaded")
	}

	if p, err := LoadPipeline(filepath.Join(dir, s.cfg.PipelineFile)); err != nil {
		s.fail("pipeline", err)
	} else {
		s.pipeline = p
		s.status.Pipeline = true
		s.log.Info().Int("columns", len(p.Columns)).Msg("valuation pipeline loaded")
	}

	if d, err := LoadDistanceTable(filepath.Join(dir, s.cfg.DistanceFile)); err != nil {
		s.fail("distance", err)
	} else {
		s.distance = d
		s.status.Distance = true
		s.log.Info().
			Int("properties", len(d.PropertyIDs)).
			Int("locations", len(d.Locations)).
			Msg("distance table loaded")
	}

	simFiles := []struct {
		name string
		file string
		dst  **SimilarityMatrix
	}{
		{"sim_location", s.cfg.SimLocation, &s.simLoc},
		{"sim_price_size", s.cfg.SimPriceSize, &s.simPrice},
		{"sim_amenity", s.cfg.SimAmenity, &s.simAmenity},
	}
	simOK := true
	for _, sf := range simFiles {
		m, err := LoadSimilarityMatrix(filepath.Join(dir, sf.file))
		if err != nil {
			s.fail(sf.name, err)
			simOK = false
			continue
		}
		*sf.dst = m
	}

	if simOK {
		if err := s.validateSimilarityConsistency(); err != nil {
			s.fail("similarity_consistency", err)
			// Fail closed: mismatched orderings would silently corrupt
			// every recommendation.
			s.simLoc, s.simPrice, s.simAmenity = nil, nil, nil
		} else {
			s.status.Similarity = true
			s.log.Info().Int("properties", s.simLoc.Size()).Msg("similarity matrices validated")
		}
	}

	if terms, err := loadFeatureText(filepath.Join(dir, s.cfg.FeatureText)); err != nil {
		s.fail("feature_text", err)
	} else {
		s.terms = terms
		s.status.FeatureText = true
		s.log.Info().Int("tokens", len(terms)).Msg("feature text loaded")
	}
}

func (s *Store) fail(name string, err error) {
	s.status.Reasons[name] = err.Error()
	s.log.Error().Err(err).Str("artifact", name).Msg("artifact load failed, subsystem degraded")
}

// validateSimilarityConsistency asserts that the three similarity matrices
// and the distance table share one property count and one ordering. Must run
// at load time; checking per query would be far too late.
func (s *Store) validateSimilarityConsistency() error {
	if s.distance == nil {
		return fmt.Errorf("distance table unavailable, similarity ordering cannot be verified")
	}

	n := len(s.distance.PropertyIDs)
	matrices := []struct {
		name string
		m    *SimilarityMatrix
	}{
		{"sim_location", s.simLoc},
		{"sim_price_size", s.simPrice},
		{"sim_amenity", s.simAmenity},
	}

	for _, e := range matrices {
		if e.m.Size() != n {
			return fmt.Errorf("%s has %d properties, distance table has %d", e.name, e.m.Size(), n)
		}
		for i, id := range e.m.PropertyIDs {
			if id != s.distance.PropertyIDs[i] {
				return fmt.Errorf("%s row %d is %q, distance table row %d is %q; orderings differ",
					e.name, i, id, i, s.distance.PropertyIDs[i])
			}
		}
	}

	return nil
}

// Status returns the per-artifact availability recorded during Load.
func (s *Store) Status() Status {
	return s.status
}

// Properties returns the property feature table, or nil when unavailable.
func (s *Store) Properties() *PropertyTable {
	return s.properties
}

// Pipeline returns the trained regression pipeline, or nil when unavailable.
func (s *Store) Pipeline() *Pipeline {
	return s.pipeline
}

// Distance returns the distance table, or nil when unavailable.
func (s *Store) Distance() *DistanceTable {
	return s.distance
}

// SimilarityMatrices returns the three validated similarity views in weight
// order (location, price/size, amenity), or nils when the recommendation
// subsystem is unavailable.
func (s *Store) SimilarityMatrices() (*SimilarityMatrix, *SimilarityMatrix, *SimilarityMatrix) {
	if !s.status.Similarity {
		return nil, nil, nil
	}
	return s.simLoc, s.simPrice, s.simAmenity
}

// FeatureTerms returns the raw amenity tokens, or nil when unavailable.
func (s *Store) FeatureTerms() []string {
	return s.terms
}

// loadFeatureText reads the whitespace-separated amenity token corpus.
func loadFeatureText(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feature text: %w", err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tok := strings.TrimSpace(scanner.Text())
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan feature text: %w", err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("feature text is empty")
	}

	return tokens, nil
}
