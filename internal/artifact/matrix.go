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

// SimilarityMatrix is a square matrix of pairwise similarity scores over the
// shared property ordering. Immutable after load.
type SimilarityMatrix struct {
	PropertyIDs []string
	Scores      [][]float64
}

// LoadSimilarityMatrix reads one similarity matrix CSV. Both the header row
// and the first column carry property names so ordering can be verified.
func LoadSimilarityMatrix(path string) (*SimilarityMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open similarity matrix: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read similarity matrix header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("similarity matrix needs at least one property column")
	}
	ids := header[1:]

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read similarity matrix rows: %w", err)
	}
	if len(rows) != len(ids) {
		return nil, fmt.Errorf("similarity matrix is not square: %d rows, %d columns",
			len(rows), len(ids))
	}

	m := &SimilarityMatrix{
		PropertyIDs: ids,
		Scores:      make([][]float64, len(rows)),
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("similarity matrix row %d has %d cells, want %d",
				i+1, len(row), len(header))
		}
		if row[0] != ids[i] {
			return nil, fmt.Errorf("similarity matrix row %d is %q, column %d is %q; orderings differ",
				i+1, row[0], i+1, ids[i])
		}
		scores := make([]float64, len(ids))
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("similarity matrix row %d column %d: %w", i+1, j+1, err)
			}
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("similarity matrix score %g at (%d, %d) outside [0, 1]", v, i+1, j+1)
			}
			scores[j] = v
		}
		m.Scores[i] = scores
	}

	return m, nil
}

// Size returns the number of properties covered by the matrix.
func (m *SimilarityMatrix) Size() int {
	return len(m.PropertyIDs)
}
