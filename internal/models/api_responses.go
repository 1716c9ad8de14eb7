// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package models

import "time"

// APIResponse is the uniform envelope for every API endpoint.
type APIResponse struct {
	// Status is "success" or "error".
	Status string `json:"status"`

	// Data contains the response payload (null on error).
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (null on success).
	Error *APIErrorInfo `json:"error,omitempty"`

	// Metadata carries timing and tracing information.
	Metadata Metadata `json:"metadata"`
}

// APIErrorInfo is the error half of an APIResponse.
type APIErrorInfo struct {
	// Code is a machine-readable error code such as INVALID_CURSOR.
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Metadata contains response metadata for tracing and performance monitoring.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms"`
	RequestID   string    `json:"request_id,omitempty"`
}
