// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package api

import (
	"errors"
	"net/http"

	"github.com/estateiq/estateiq/internal/query"
)

// statusForError maps the engine error taxonomy to HTTP status codes.
// Unavailable artifacts are a service condition (503), unknown identifiers
// are missing resources (404), bad parameters are client errors (400), and a
// prediction failure on well-formed input is unprocessable content (422).
func statusForError(err error) int {
	switch {
	case errors.Is(err, query.ErrArtifactUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, query.ErrUnknownIdentifier):
		return http.StatusNotFound
	case errors.Is(err, query.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, query.ErrPredictionFailure):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondEngineError translates an engine error into the response envelope
// using the stable taxonomy code.
func respondEngineError(w http.ResponseWriter, err error) {
	respondError(w, statusForError(err), query.ErrorCode(err), err.Error(), err)
}
