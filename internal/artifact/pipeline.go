// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package artifact

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-json"
)

// ErrUnseenCategory is returned by Pipeline.Predict when a categorical value
// lies outside the trained vocabulary.
var ErrUnseenCategory = errors.New("category outside trained vocabulary")

// Column kinds in the pipeline schema.
const (
	ColumnNumeric     = "numeric"
	ColumnCategorical = "categorical"
)

// SchemaColumn is one entry of the trained feature schema, in training order.
type SchemaColumn struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Pipeline is the exported regression pipeline: a linear model over numeric
// features and one-hot encoded categoricals, predicting in log-price space.
// The column order is a contract with the valuation engine and must match
// training exactly.
type Pipeline struct {
	Target      string                        `json:"target"`
	Intercept   float64                       `json:"intercept"`
	Columns     []SchemaColumn                `json:"columns"`
	Numeric     map[string]float64            `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
}

// LoadPipeline reads and validates an exported pipeline file.
func LoadPipeline(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline: %w", err)
	}

	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}

	if len(p.Columns) == 0 {
		return nil, fmt.Errorf("pipeline has empty column schema")
	}
	for _, col := range p.Columns {
		switch col.Kind {
		case ColumnNumeric:
			if _, ok := p.Numeric[col.Name]; !ok {
				return nil, fmt.Errorf("pipeline missing numeric coefficient for column %q", col.Name)
			}
		case ColumnCategorical:
			if len(p.Categorical[col.Name]) == 0 {
				return nil, fmt.Errorf("pipeline missing vocabulary for column %q", col.Name)
			}
		default:
			return nil, fmt.Errorf("pipeline column %q has unknown kind %q", col.Name, col.Kind)
		}
	}

	return &p, nil
}

// FeatureValue is one cell of the ordered feature vector. Exactly one of
// Number or Category is meaningful, depending on the column kind.
type FeatureValue struct {
	Number   float64
	Category string
}

// SchemaNames returns the trained column names in order.
func (p *Pipeline) SchemaNames() []string {
	names := make([]string, len(p.Columns))
	for i, col := range p.Columns {
		names[i] = col.Name
	}
	return names
}

// Vocabulary returns the trained categories for a categorical column.
// Returns nil for numeric or unknown columns.
func (p *Pipeline) Vocabulary(column string) map[string]float64 {
	return p.Categorical[column]
}

// Predict maps an ordered feature vector to a scalar in log-price space.
// The vector must align with the column schema; an unseen category fails
// with ErrUnseenCategory.
func (p *Pipeline) Predict(vector []FeatureValue) (float64, error) {
	if len(vector) != len(p.Columns) {
		return 0, fmt.Errorf("feature vector length %d does not match schema length %d",
			len(vector), len(p.Columns))
	}

	sum := p.Intercept
	for i, col := range p.Columns {
		switch col.Kind {
		case ColumnNumeric:
			v := vector[i].Number
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("non-finite value for column %q", col.Name)
			}
			sum += p.Numeric[col.Name] * v
		case ColumnCategorical:
			coef, ok := p.Categorical[col.Name][vector[i].Category]
			if !ok {
				return 0, fmt.Errorf("column %q value %q: %w",
					col.Name, vector[i].Category, ErrUnseenCategory)
			}
			sum += coef
		}
	}

	return sum, nil
}
