// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/estateiq/estateiq/internal/config"
)

func testArtifactsConfig(dir string) config.ArtifactsConfig {
	return config.ArtifactsConfig{
		Dir:            dir,
		PropertiesFile: "properties.csv",
		PipelineFile:   "pipeline.json",
		DistanceFile:   "location_distance.csv",
		SimLocation:    "cosine_sim1.csv",
		SimPriceSize:   "cosine_sim2.csv",
		SimAmenity:     "cosine_sim3.csv",
		FeatureText:    "feature_text.txt",
		VizDataFile:    "data_viz.csv",
	}
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
}

const propertiesCSV = `property_name,property_type,sector,bedRoom,bathroom,balcony,agePossession,built_up_area,servant room,store room,furnishing_type,luxury_category,floor_category,price
P1,flat,sector 1,3,2,2,New Property,1500,0,0,unfurnished,Low,Low Floor,1.25
P2,flat,sector 2,4,3,3+,Relatively New,2750,1,0,semifurnished,Medium,Mid Floor,2.80
P3,house,sector 1,5,4,2,Old Property,3200,1,1,furnished,High,High Floor,4.10
`

const pipelineJSON = `{
  "target": "log_price",
  "intercept": 0.5,
  "columns": [
    {"name": "property_type", "kind": "categorical"},
    {"name": "built_up_area", "kind": "numeric"}
  ],
  "numeric": {"built_up_area": 0.0002},
  "categorical": {"property_type": {"flat": 0.1, "house": 0.3}}
}`

const distanceCSV = `property_name,Loc_A,Loc_B
P1,500,3000
P2,1500,2500
P3,2000,1000
`

func simCSV(ids [3]string) string {
	return "property_name," + ids[0] + "," + ids[1] + "," + ids[2] + "\n" +
		ids[0] + ",1.0,0.5,0.2\n" +
		ids[1] + ",0.5,1.0,0.4\n" +
		ids[2] + ",0.2,0.4,1.0\n"
}

func writeAllFixtures(t *testing.T, dir string) {
	t.Helper()
	ids := [3]string{"P1", "P2", "P3"}
	writeFixture(t, dir, "properties.csv", propertiesCSV)
	writeFixture(t, dir, "pipeline.json", pipelineJSON)
	writeFixture(t, dir, "location_distance.csv", distanceCSV)
	writeFixture(t, dir, "cosine_sim1.csv", simCSV(ids))
	writeFixture(t, dir, "cosine_sim2.csv", simCSV(ids))
	writeFixture(t, dir, "cosine_sim3.csv", simCSV(ids))
	writeFixture(t, dir, "feature_text.txt", "pool gym pool parking gym pool")
}

func TestStoreLoadAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeAllFixtures(t, dir)

	store := NewStore(testArtifactsConfig(dir))
	store.Load()

	status := store.Status()
	if !status.Properties || !status.Pipeline || !status.Distance ||
		!status.Similarity || !status.FeatureText {
		t.Fatalf("expected all artifacts loaded, got %+v", status)
	}

	if got := len(store.Properties().Rows); got != 3 {
		t.Errorf("property rows = %d, want 3", got)
	}
	if got := len(store.Distance().PropertyIDs); got != 3 {
		t.Errorf("distance properties = %d, want 3", got)
	}
	s1, s2, s3 := store.SimilarityMatrices()
	if s1 == nil || s2 == nil || s3 == nil {
		t.Fatal("expected all three similarity matrices")
	}
	if got := len(store.FeatureTerms()); got != 6 {
		t.Errorf("feature tokens = %d, want 6", got)
	}
}

func TestStoreDegradationIsolation(t *testing.T) {
	// Similarity matrices missing: valuation artifacts must still load.
	dir := t.TempDir()
	writeFixture(t, dir, "properties.csv", propertiesCSV)
	writeFixture(t, dir, "pipeline.json", pipelineJSON)
	writeFixture(t, dir, "location_distance.csv", distanceCSV)
	writeFixture(t, dir, "feature_text.txt", "pool gym")

	store := NewStore(testArtifactsConfig(dir))
	store.Load()

	status := store.Status()
	if !status.Properties || !status.Pipeline {
		t.Fatalf("valuation artifacts should load independently, got %+v", status)
	}
	if status.Similarity {
		t.Error("similarity should be unavailable when matrices are missing")
	}
	if s1, _, _ := store.SimilarityMatrices(); s1 != nil {
		t.Error("expected nil similarity matrices when subsystem is unavailable")
	}
	if !status.Distance {
		t.Error("distance table should load independently of similarity matrices")
	}
	if len(status.Reasons) == 0 {
		t.Error("expected recorded reasons for failed artifacts")
	}
}

func TestStoreSimilarityOrderingMismatchFailsClosed(t *testing.T) {
	dir := t.TempDir()
	writeAllFixtures(t, dir)
	// One matrix with swapped ordering silently corrupts every
	// recommendation; the whole subsystem must go unavailable.
	writeFixture(t, dir, "cosine_sim2.csv", simCSV([3]string{"P2", "P1", "P3"}))

	store := NewStore(testArtifactsConfig(dir))
	store.Load()

	status := store.Status()
	if status.Similarity {
		t.Fatal("ordering mismatch must mark similarity unavailable")
	}
	if s1, s2, s3 := store.SimilarityMatrices(); s1 != nil || s2 != nil || s3 != nil {
		t.Error("expected nil matrices after failed consistency validation")
	}
	if _, ok := status.Reasons["similarity_consistency"]; !ok {
		t.Errorf("expected similarity_consistency reason, got %v", status.Reasons)
	}
	// Distance-backed search is unaffected.
	if !status.Distance {
		t.Error("distance table should remain available")
	}
}

func TestStoreSizeMismatchFailsClosed(t *testing.T) {
	dir := t.TempDir()
	writeAllFixtures(t, dir)
	writeFixture(t, dir, "cosine_sim3.csv",
		"property_name,P1,P2\nP1,1.0,0.5\nP2,0.5,1.0\n")

	store := NewStore(testArtifactsConfig(dir))
	store.Load()

	if store.Status().Similarity {
		t.Fatal("size mismatch must mark similarity unavailable")
	}
}

func TestStoreMissingEverything(t *testing.T) {
	store := NewStore(testArtifactsConfig(t.TempDir()))
	store.Load()

	status := store.Status()
	if status.Properties || status.Pipeline || status.Distance ||
		status.Similarity || status.FeatureText {
		t.Fatalf("expected nothing loaded from empty dir, got %+v", status)
	}
	if store.Properties() != nil || store.Pipeline() != nil || store.Distance() != nil {
		t.Error("accessors must return nil sentinels for unavailable artifacts")
	}
}
