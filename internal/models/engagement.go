// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package models

import "github.com/google/uuid"

// EngagementDelta is one batch of counter increments for a content item,
// produced by the engagement event pipeline and applied atomically by the
// content store together with the score recomputation.
type EngagementDelta struct {
	ItemID   uuid.UUID `json:"item_id"`
	Likes    int64     `json:"likes"`
	Comments int64     `json:"comments"`
	Shares   int64     `json:"shares"`
	Views    int64     `json:"views"`
}

// IsZero reports whether the delta changes nothing.
func (d EngagementDelta) IsZero() bool {
	return d.Likes == 0 && d.Comments == 0 && d.Shares == 0 && d.Views == 0
}
