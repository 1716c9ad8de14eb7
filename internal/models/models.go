// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package models contains the shared data structures exchanged between the
// feed engine, the content store, the preference store, and the API layer.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentItem is a single piece of feed content published by a community member.
//
// The interaction counters are mutated by independent engagement events; the
// derived EngagementScore is recomputed whenever a counter changes and is the
// primary ranking signal for engagement-ordered feeds. It is monotonically
// comparable across items at read time but not transactionally consistent
// with the counters.
//
// Items are soft-deleted, never physically purged during the retention window
// feeds read from, so cursors issued before a deletion remain valid.
type ContentItem struct {
	// ID is a UUIDv7, so byte order follows creation order. This makes the
	// final id tie-break of every sort mode stable and meaningful.
	ID       uuid.UUID `json:"id"`
	AuthorID string    `json:"author_id"`

	Title string `json:"title"`
	Body  string `json:"body,omitempty"`

	// Tags holds normalized (lowercase, trimmed) crop/topic tags.
	Tags []string `json:"tags"`

	// Region is the declared region tag, empty if none.
	Region string `json:"region,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	ShareCount   int64 `json:"share_count"`
	ViewCount    int64 `json:"view_count"`

	EngagementScore float64 `json:"engagement_score"`

	Deleted bool `json:"-"`
}

// ViewerProfile holds the personalization inputs for a viewer. It is a
// read-only input to ranking; profile-edit flows mutate it elsewhere.
type ViewerProfile struct {
	ID string `json:"id"`

	// Tags are the viewer's declared crop/topic affinity tags (normalized
	// lowercase).
	Tags []string `json:"tags"`

	// Region is the viewer's declared region, empty if none.
	Region string `json:"region,omitempty"`

	// Following lists author ids the viewer follows.
	Following []string `json:"following"`
}

// IsEmpty reports whether the profile carries no personalization signal at
// all. An empty profile degrades personalized matching to match-all so a
// cold-start viewer still receives a feed.
func (p *ViewerProfile) IsEmpty() bool {
	return p == nil || (len(p.Tags) == 0 && p.Region == "" && len(p.Following) == 0)
}

// ExclusionSet is the per-viewer negative filter: hidden content items and
// muted authors. It is owned by the viewer and only ever consulted, never
// mutated, by the ranking core. A missing record means no exclusions.
type ExclusionSet struct {
	HiddenItemIDs  []string `json:"hidden_item_ids"`
	MutedAuthorIDs []string `json:"muted_author_ids"`
}

// IsZero reports whether the set excludes nothing.
func (e ExclusionSet) IsZero() bool {
	return len(e.HiddenItemIDs) == 0 && len(e.MutedAuthorIDs) == 0
}

// FeedCursor is the decoded form of an opaque pagination token. It records
// the sort-key tuple of the last item on the previous page, tagged with the
// sort mode that produced it so a cursor can never be reinterpreted under a
// different ordering.
//
// The wire form is base64url-encoded JSON of this struct. Callers treat it
// as opaque.
type FeedCursor struct {
	// Version guards against incompatible future encodings.
	Version int `json:"v"`

	// Mode is the sort mode tag ("newest", "engagement", "personalized").
	Mode string `json:"mode"`

	// Score is the engagement score of the last item. Nil for the newest
	// mode, which sorts on creation time alone.
	Score *float64 `json:"score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// Pagination mode flags returned to callers so they know which stability
// guarantees apply. Only cursor mode carries the no-skip/no-duplicate
// invariant.
const (
	PaginationCursor = "cursor"
	PaginationOffset = "offset"
)

// Page is one page of feed results. HasMore is false exactly when NextCursor
// is nil.
type Page struct {
	Items      []ContentItem `json:"items"`
	HasMore    bool          `json:"has_more"`
	NextCursor *string       `json:"next_cursor"`

	// PaginationMode is PaginationCursor or PaginationOffset.
	PaginationMode string `json:"pagination_mode"`

	// Total is the count of items matching the plan, populated for offset
	// mode only.
	Total *int64 `json:"total,omitempty"`
}
