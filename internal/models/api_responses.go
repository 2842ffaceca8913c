// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP endpoints.
// Status is "success" or "error"; Error is populated only on failure.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"point": 2.37, "low": 2.15, "high": 2.59},
//	  "metadata": {
//	    "timestamp": "2026-08-27T12:00:00Z",
//	    "query_time_ms": 2,
//	    "cached": false
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms"`
	Cached      bool      `json:"cached"`
}

// APIError carries a stable machine-readable code alongside a human message.
// Details holds optional field-level context such as validation failures.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewSuccessResponse builds a success envelope around the given payload.
func NewSuccessResponse(data interface{}, queryTime time.Duration, cached bool) APIResponse {
	return APIResponse{
		Status: "success",
		Data:   data,
		Metadata: Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryTime.Milliseconds(),
			Cached:      cached,
		},
	}
}

// NewErrorResponse builds an error envelope with the given code and message.
func NewErrorResponse(code, message string, details map[string]interface{}) APIResponse {
	return APIResponse{
		Status: "error",
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
