// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package analytics

import (
	"sort"
	"strings"

	"github.com/estateiq/estateiq/internal/models"
)

// TermFrequencies counts the amenity tokens and returns the most frequent
// terms, descending by count with ties broken lexically. A limit below one
// means no truncation. Counting is case-insensitive; the lowercased form is
// reported.
func TermFrequencies(tokens []string, limit int) []models.FeatureTerm {
	counts := make(map[string]int64, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			counts[tok]++
		}
	}

	terms := make([]models.FeatureTerm, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, models.FeatureTerm{Term: term, Count: count})
	}

	sort.Slice(terms, func(a, b int) bool {
		if terms[a].Count != terms[b].Count {
			return terms[a].Count > terms[b].Count
		}
		return terms[a].Term < terms[b].Term
	})

	if limit > 0 && limit < len(terms) {
		terms = terms[:limit]
	}
	return terms
}
