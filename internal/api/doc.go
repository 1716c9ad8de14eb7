// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package api provides the HTTP surface of the feed engine: the feed read
// endpoint, content ingestion, engagement ingestion, viewer preference
// management, and health probes. Routing is Chi with CORS, per-IP rate
// limiting, request-id propagation, and Prometheus instrumentation.
package api
