// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package database is the DuckDB-backed content store. It owns the
// content_items schema, content ingestion and soft deletion, engagement
// counter application, and the translation of feed retrieval plans into
// SQL (it implements feed.Store).
//
// Queries run behind a circuit breaker so a wedged database degrades feed
// reads fast instead of piling up blocked requests.
package database
