// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package query

import "errors"

// The four terminal error kinds every engine call resolves to. All are
// terminal for the triggering request: operations are pure and deterministic,
// so a retry without changed input reproduces the same failure.
var (
	// ErrArtifactUnavailable indicates a required artifact failed to load or
	// failed cross-consistency validation. The affected engine refuses all
	// calls rather than returning placeholder data.
	ErrArtifactUnavailable = errors.New("artifact unavailable")

	// ErrUnknownIdentifier indicates a requested property or location is not
	// present in the loaded universe.
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrInvalidParameter indicates a malformed request parameter, rejected
	// before touching any artifact.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrPredictionFailure indicates the pipeline rejected the constructed
	// feature vector, e.g. a category outside the trained vocabulary.
	ErrPredictionFailure = errors.New("prediction failure")
)
