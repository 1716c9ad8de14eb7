// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import "errors"

// Failure taxonomy exposed across the engine boundary. Errors are returned,
// never panicked, and callers distinguish them with errors.Is.
var (
	// ErrInvalidCursor indicates a malformed, version-incompatible, or
	// mode-mismatched pagination token. The caller should restart
	// pagination from a nil cursor.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidLimit indicates an out-of-range page limit. The engine
	// recovers locally by clamping, so this error never crosses the
	// GetFeed boundary; it exists for callers that drive the paginator
	// directly.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrUpstreamUnavailable indicates the content store could not be
	// reached. It is surfaced as-is and retried by the caller's own
	// policy; the engine never retries internally.
	ErrUpstreamUnavailable = errors.New("content store unavailable")
)
