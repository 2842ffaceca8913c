// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package geosearch

import (
	"errors"
	"testing"

	"github.com/estateiq/estateiq/internal/artifact"
	"github.com/estateiq/estateiq/internal/query"
)

// testTable builds a distance table directly; loading from CSV is covered by
// the artifact package tests.
func testTable() *artifact.DistanceTable {
	return artifact.NewDistanceTable(
		[]string{"P1", "P2", "P3"},
		[]string{"Loc_A", "Loc_B"},
		[][]float64{
			{500, 3000},
			{1500, 2500},
			{2000, 1000},
		},
	)
}

func TestSearchStrictRadius(t *testing.T) {
	engine := NewEngine(testTable())

	// 1.5 km = 1500 m: P2 sits at exactly 1500 and must be excluded.
	got, err := engine.Search("Loc_A", 1.5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(got), got)
	}
	if got[0].PropertyID != "P1" || got[0].DistanceKM != 0.5 {
		t.Errorf("got %+v, want {P1 0.5}", got[0])
	}
}

func TestSearchAscendingOrder(t *testing.T) {
	engine := NewEngine(testTable())

	got, err := engine.Search("Loc_A", 5)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d matches, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].DistanceKM > got[i].DistanceKM {
			t.Errorf("distances not ascending: %v", got)
		}
	}
	if got[0].PropertyID != "P1" || got[1].PropertyID != "P2" || got[2].PropertyID != "P3" {
		t.Errorf("order = %v, want P1 P2 P3", got)
	}
}

func TestSearchRounding(t *testing.T) {
	table := artifact.NewDistanceTable(
		[]string{"P1"},
		[]string{"Loc_A"},
		[][]float64{{1234.4}},
	)
	engine := NewEngine(table)

	got, err := engine.Search("Loc_A", 2)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if got[0].DistanceKM != 1.23 {
		t.Errorf("DistanceKM = %g, want 1.23", got[0].DistanceKM)
	}
}

func TestSearchEmptyResultIsNotError(t *testing.T) {
	engine := NewEngine(testTable())

	got, err := engine.Search("Loc_B", 0.1)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty list", got)
	}
}

func TestSearchErrors(t *testing.T) {
	engine := NewEngine(testTable())

	t.Run("unknown location", func(t *testing.T) {
		_, err := engine.Search("Loc_Z", 1)
		if !errors.Is(err, query.ErrUnknownIdentifier) {
			t.Errorf("expected ErrUnknownIdentifier, got %v", err)
		}
	})

	t.Run("zero radius", func(t *testing.T) {
		_, err := engine.Search("Loc_A", 0)
		if !errors.Is(err, query.ErrInvalidParameter) {
			t.Errorf("expected ErrInvalidParameter, got %v", err)
		}
	})

	t.Run("negative radius", func(t *testing.T) {
		_, err := engine.Search("Loc_A", -2)
		if !errors.Is(err, query.ErrInvalidParameter) {
			t.Errorf("expected ErrInvalidParameter, got %v", err)
		}
	})

	t.Run("unavailable table", func(t *testing.T) {
		unavailable := NewEngine(nil)
		if unavailable.Available() {
			t.Error("engine with nil table must report unavailable")
		}
		_, err := unavailable.Search("Loc_A", 1)
		if !errors.Is(err, query.ErrArtifactUnavailable) {
			t.Errorf("expected ErrArtifactUnavailable, got %v", err)
		}
	})
}
