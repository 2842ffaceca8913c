// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/estateiq/estateiq/internal/models"
)

// PropertyRow is one row of the property feature table: the identifier, the
// feature record, and the listed price in crores.
type PropertyRow struct {
	Name   string
	Record models.PropertyRecord
	Price  float64
}

// PropertyTable is the loaded property feature table. Immutable after load.
type PropertyTable struct {
	Rows []PropertyRow
}

// propertyColumns are the expected CSV columns, matching the training export.
var propertyColumns = []string{
	"property_name",
	"property_type",
	"sector",
	"bedRoom",
	"bathroom",
	"balcony",
	"agePossession",
	"built_up_area",
	"servant room",
	"store room",
	"furnishing_type",
	"luxury_category",
	"floor_category",
	"price",
}

// LoadPropertyTable reads the property feature table CSV.
func LoadPropertyTable(path string) (*PropertyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open property table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read property table header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, want := range propertyColumns {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("property table missing column %q", want)
		}
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read property table rows: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("property table is empty")
	}

	table := &PropertyTable{Rows: make([]PropertyRow, 0, len(records))}
	for i, rec := range records {
		num := func(col string) (float64, error) {
			v, err := strconv.ParseFloat(rec[idx[col]], 64)
			if err != nil {
				return 0, fmt.Errorf("property table row %d column %q: %w", i+1, col, err)
			}
			return v, nil
		}

		bedrooms, err := num("bedRoom")
		if err != nil {
			return nil, err
		}
		bathrooms, err := num("bathroom")
		if err != nil {
			return nil, err
		}
		area, err := num("built_up_area")
		if err != nil {
			return nil, err
		}
		servant, err := num("servant room")
		if err != nil {
			return nil, err
		}
		store, err := num("store room")
		if err != nil {
			return nil, err
		}
		price, err := num("price")
		if err != nil {
			return nil, err
		}

		table.Rows = append(table.Rows, PropertyRow{
			Name: rec[idx["property_name"]],
			Record: models.PropertyRecord{
				PropertyType:      rec[idx["property_type"]],
				Sector:            rec[idx["sector"]],
				BedroomCount:      bedrooms,
				BathroomCount:     bathrooms,
				BalconyCount:      rec[idx["balcony"]],
				PropertyAgeBucket: rec[idx["agePossession"]],
				BuiltUpArea:       area,
				ServantRoom:       servant,
				StoreRoom:         store,
				FurnishingType:    rec[idx["furnishing_type"]],
				LuxuryCategory:    rec[idx["luxury_category"]],
				FloorCategory:     rec[idx["floor_category"]],
			},
			Price: price,
		})
	}

	return table, nil
}

// Options derives the prediction form vocabularies from the loaded rows.
// String vocabularies are sorted lexically, numeric ones ascending.
func (t *PropertyTable) Options() models.PredictionOptions {
	types := newStringSet()
	sectors := newStringSet()
	balconies := newStringSet()
	ages := newStringSet()
	furnishings := newStringSet()
	luxuries := newStringSet()
	floors := newStringSet()
	bedrooms := map[float64]struct{}{}
	bathrooms := map[float64]struct{}{}

	for _, row := range t.Rows {
		types.add(row.Record.PropertyType)
		sectors.add(row.Record.Sector)
		balconies.add(row.Record.BalconyCount)
		ages.add(row.Record.PropertyAgeBucket)
		furnishings.add(row.Record.FurnishingType)
		luxuries.add(row.Record.LuxuryCategory)
		floors.add(row.Record.FloorCategory)
		bedrooms[row.Record.BedroomCount] = struct{}{}
		bathrooms[row.Record.BathroomCount] = struct{}{}
	}

	return models.PredictionOptions{
		PropertyTypes:      types.sorted(),
		Sectors:            sectors.sorted(),
		BedroomCounts:      sortedFloats(bedrooms),
		BathroomCounts:     sortedFloats(bathrooms),
		BalconyCounts:      balconies.sorted(),
		PropertyAgeBuckets: ages.sorted(),
		FurnishingTypes:    furnishings.sorted(),
		LuxuryCategories:   luxuries.sorted(),
		FloorCategories:    floors.sorted(),
	}
}

// DefaultOptions returns the documented fallback vocabularies served when the
// property table is unavailable.
func DefaultOptions() models.PredictionOptions {
	return models.PredictionOptions{
		PropertyTypes:      []string{"flat", "house"},
		Sectors:            []string{},
		BedroomCounts:      []float64{1, 2, 3, 4, 5},
		BathroomCounts:     []float64{1, 2, 3, 4},
		BalconyCounts:      []string{"0", "1", "2", "3", "3+"},
		PropertyAgeBuckets: []string{"New Property", "Relatively New", "Moderately Old", "Old Property"},
		FurnishingTypes:    []string{"unfurnished", "semifurnished", "furnished"},
		LuxuryCategories:   []string{"Low", "Medium", "High"},
		FloorCategories:    []string{"Low Floor", "Mid Floor", "High Floor"},
	}
}

type stringSet map[string]struct{}

func newStringSet() stringSet { return make(stringSet) }

func (s stringSet) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func sortedFloats(set map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
