// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package eventprocessor is the engagement event pipeline. Interaction
// events (likes, comments, shares, views) are published onto an in-process
// Watermill bus and consumed by a router that folds them into the content
// store's counters and recomputes the stored engagement score.
//
// Decoupling ingestion from counter application keeps the write path of
// the API cheap and gives retries and poison-queue handling a single home.
package eventprocessor
