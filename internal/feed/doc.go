// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package feed implements the personalized feed ranking and cursor
// pagination engine.
//
// The engine composes four pieces into a retrieval plan that a content
// store executes:
//
//   - exclusion resolution: the viewer's hidden items and muted authors
//     become a negative predicate applied in every mode
//   - affinity matching: the viewer's declared crops/topics, region, and
//     follow relationships become an inclusive relevance predicate
//   - a sort mode (newest, engagement, personalized) defining a strict
//     total order with a fixed tie-break chain
//   - a resume position decoded from an opaque cursor token
//
// Every sort order is total: ties on the primary key fall through to
// creation time and finally to the item id, so pagination can never stall
// on duplicate keys. Cursors encode the sort-key tuple of the last item
// rather than an offset, which keeps pages stable under concurrent inserts
// and soft deletions.
//
// The engine is read-only over shared data and requires no cross-request
// coordination; every retrieval takes a context.Context and can be
// abandoned at any store call.
package feed
