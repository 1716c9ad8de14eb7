// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"bytes"

	"github.com/tomtom215/fieldfeed/internal/models"
)

// SortMode is a tagged variant selecting the total order of a feed. Each
// mode carries its own comparator and cursor tuple shape rather than
// string-keyed branching scattered across the pipeline, so the total-order
// invariant is enforceable per mode.
type SortMode string

const (
	// SortNewest orders by creation time descending, tie-broken by id
	// descending.
	SortNewest SortMode = "newest"

	// SortEngagement orders by engagement score descending, then creation
	// time descending, then id descending.
	SortEngagement SortMode = "engagement"

	// SortPersonalized uses the SortEngagement order and additionally
	// constrains results with the viewer's affinity predicate.
	SortPersonalized SortMode = "personalized"
)

// ParseSortMode parses a caller-supplied sort string. The boolean is false
// for unrecognized values.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case SortNewest, SortEngagement, SortPersonalized:
		return SortMode(s), true
	default:
		return "", false
	}
}

// UsesScore reports whether the mode's primary sort key is the engagement
// score. When false the primary key is creation time and cursors omit the
// score field.
func (m SortMode) UsesScore() bool {
	return m == SortEngagement || m == SortPersonalized
}

// Less reports whether a ranks strictly before b in this mode's descending
// total order. The tie-break chain is always score (when used), then
// creation time, then id, so the order is total for any pair of distinct
// items.
func (m SortMode) Less(a, b models.ContentItem) bool {
	if m.UsesScore() && a.EngagementScore != b.EngagementScore {
		return a.EngagementScore > b.EngagementScore
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) > 0
}

// CursorFrom builds the cursor recording item's position in this mode's
// order. The cursor references comparison values, not a row offset, so it
// stays valid when items before it are inserted or soft-deleted.
func (m SortMode) CursorFrom(item models.ContentItem) models.FeedCursor {
	c := models.FeedCursor{
		Version:   CursorVersion,
		Mode:      string(m),
		CreatedAt: item.CreatedAt,
		ID:        item.ID.String(),
	}
	if m.UsesScore() {
		score := item.EngagementScore
		c.Score = &score
	}
	return c
}

// AcceptsCursorMode reports whether a cursor tagged with tag may resume a
// pagination session requested in this mode.
//
// A personalized request accepts an engagement-tagged cursor: that is the
// cold-start fallback continuing on the pipeline that produced its first
// page. Every other mismatch is rejected rather than silently
// reinterpreted.
func (m SortMode) AcceptsCursorMode(tag string) bool {
	if string(m) == tag {
		return true
	}
	return m == SortPersonalized && tag == string(SortEngagement)
}
