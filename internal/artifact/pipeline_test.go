// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package artifact

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func loadTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "pipeline.json", pipelineJSON)
	p, err := LoadPipeline(filepath.Join(dir, "pipeline.json"))
	if err != nil {
		t.Fatalf("LoadPipeline error: %v", err)
	}
	return p
}

func TestPipelinePredict(t *testing.T) {
	p := loadTestPipeline(t)

	got, err := p.Predict([]FeatureValue{
		{Category: "flat"},
		{Number: 1500},
	})
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	want := 0.5 + 0.1 + 0.0002*1500
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Predict = %g, want %g", got, want)
	}
}

func TestPipelinePredictDeterministic(t *testing.T) {
	p := loadTestPipeline(t)
	vec := []FeatureValue{{Category: "house"}, {Number: 2750}}

	first, err := p.Predict(vec)
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	second, err := p.Predict(vec)
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	if first != second {
		t.Errorf("identical input produced %g then %g", first, second)
	}
}

func TestPipelinePredictUnseenCategory(t *testing.T) {
	p := loadTestPipeline(t)

	_, err := p.Predict([]FeatureValue{
		{Category: "castle"},
		{Number: 1500},
	})
	if !errors.Is(err, ErrUnseenCategory) {
		t.Errorf("expected ErrUnseenCategory, got %v", err)
	}
}

func TestPipelinePredictBadVector(t *testing.T) {
	p := loadTestPipeline(t)

	tests := []struct {
		name   string
		vector []FeatureValue
	}{
		{"wrong length", []FeatureValue{{Category: "flat"}}},
		{"NaN numeric", []FeatureValue{{Category: "flat"}, {Number: math.NaN()}}},
		{"Inf numeric", []FeatureValue{{Category: "flat"}, {Number: math.Inf(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := p.Predict(tt.vector); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadPipelineRejectsIncompleteExport(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty schema", `{"intercept": 1, "columns": []}`},
		{"missing numeric coef", `{"intercept": 1,
			"columns": [{"name": "area", "kind": "numeric"}], "numeric": {}}`},
		{"missing vocabulary", `{"intercept": 1,
			"columns": [{"name": "type", "kind": "categorical"}], "categorical": {}}`},
		{"unknown kind", `{"intercept": 1,
			"columns": [{"name": "x", "kind": "ordinal"}]}`},
		{"not json", `intercept: 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFixture(t, dir, "pipeline.json", tt.data)
			if _, err := LoadPipeline(filepath.Join(dir, "pipeline.json")); err == nil {
				t.Error("expected load error, got nil")
			}
		})
	}
}

func TestPropertyTableOptions(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "properties.csv", propertiesCSV)
	table, err := LoadPropertyTable(filepath.Join(dir, "properties.csv"))
	if err != nil {
		t.Fatalf("LoadPropertyTable error: %v", err)
	}

	opts := table.Options()
	if len(opts.PropertyTypes) != 2 {
		t.Errorf("PropertyTypes = %v, want [flat house]", opts.PropertyTypes)
	}
	if opts.PropertyTypes[0] != "flat" || opts.PropertyTypes[1] != "house" {
		t.Errorf("PropertyTypes not sorted: %v", opts.PropertyTypes)
	}
	if len(opts.BedroomCounts) != 3 {
		t.Errorf("BedroomCounts = %v, want three distinct values", opts.BedroomCounts)
	}
	for i := 1; i < len(opts.BedroomCounts); i++ {
		if opts.BedroomCounts[i-1] > opts.BedroomCounts[i] {
			t.Errorf("BedroomCounts not ascending: %v", opts.BedroomCounts)
		}
	}
	found := false
	for _, b := range opts.BalconyCounts {
		if b == "3+" {
			found = true
		}
	}
	if !found {
		t.Errorf("BalconyCounts = %v, want to include 3+", opts.BalconyCounts)
	}
}

func TestDefaultOptionsFallback(t *testing.T) {
	opts := DefaultOptions()
	if len(opts.PropertyAgeBuckets) != 4 {
		t.Errorf("PropertyAgeBuckets = %v, want four buckets", opts.PropertyAgeBuckets)
	}
	if len(opts.FurnishingTypes) != 3 {
		t.Errorf("FurnishingTypes = %v, want three types", opts.FurnishingTypes)
	}
}
