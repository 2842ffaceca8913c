// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// DistanceTable maps (property, location) to a distance stored in meters.
// Rows are property identifiers, the universe of recommendable properties;
// columns are named reference locations. Immutable after load.
type DistanceTable struct {
	PropertyIDs []string
	Locations   []string
	Meters      [][]float64 // [property][location]

	propIndex map[string]int
	locIndex  map[string]int
}

// NewDistanceTable builds a distance table from in-memory data, indexing the
// property and location lookups. Used by tests and synthetic fixtures.
func NewDistanceTable(propertyIDs, locations []string, meters [][]float64) *DistanceTable {
	t := &DistanceTable{
		PropertyIDs: propertyIDs,
		Locations:   locations,
		Meters:      meters,
		propIndex:   make(map[string]int, len(propertyIDs)),
		locIndex:    make(map[string]int, len(locations)),
	}
	for i, id := range propertyIDs {
		t.propIndex[id] = i
	}
	for i, loc := range locations {
		t.locIndex[loc] = i
	}
	return t
}

// LoadDistanceTable reads the distance table CSV. The first column holds
// property names; the header row holds location names.
func LoadDistanceTable(path string) (*DistanceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open distance table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read distance table header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("distance table needs at least one location column")
	}

	t := &DistanceTable{
		Locations: header[1:],
		propIndex: make(map[string]int),
		locIndex:  make(map[string]int, len(header)-1),
	}
	for i, loc := range t.Locations {
		if _, dup := t.locIndex[loc]; dup {
			return nil, fmt.Errorf("distance table has duplicate location %q", loc)
		}
		t.locIndex[loc] = i
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read distance table rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("distance table is empty")
	}

	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("distance table row %d has %d cells, want %d",
				i+1, len(row), len(header))
		}
		name := row[0]
		if _, dup := t.propIndex[name]; dup {
			return nil, fmt.Errorf("distance table has duplicate property %q", name)
		}
		t.propIndex[name] = i
		t.PropertyIDs = append(t.PropertyIDs, name)

		meters := make([]float64, len(t.Locations))
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("distance table row %d column %q: %w", i+1, t.Locations[j], err)
			}
			meters[j] = v
		}
		t.Meters = append(t.Meters, meters)
	}

	return t, nil
}

// PropertyIndex returns the row index for a property identifier.
func (t *DistanceTable) PropertyIndex(id string) (int, bool) {
	i, ok := t.propIndex[id]
	return i, ok
}

// LocationIndex returns the column index for a location name.
func (t *DistanceTable) LocationIndex(name string) (int, bool) {
	i, ok := t.locIndex[name]
	return i, ok
}
