// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import "github.com/tomtom215/fieldfeed/internal/models"

// Engagement score weights. Shares travel furthest, comments cost the most
// effort, likes are cheap, views are nearly free. The stored
// engagement_score column is maintained with these same weights by the
// engagement event pipeline, so the score the ranking reads and the score
// this function computes never diverge.
const (
	LikeWeight    = 2.0
	CommentWeight = 3.0
	ShareWeight   = 4.0
	ViewWeight    = 0.1
)

// Score derives an item's engagement score from its interaction counters.
// It is a pure function; recency is handled by the sort tie-break chain,
// not folded into the score, so two items' scores stay monotonically
// comparable at read time.
//
// Ranking never relies on scores being unique: equal scores fall through
// to creation time and then to the item id (see SortMode), so the order
// stays total regardless of collisions here.
func Score(item models.ContentItem) float64 {
	return float64(item.LikeCount)*LikeWeight +
		float64(item.CommentCount)*CommentWeight +
		float64(item.ShareCount)*ShareWeight +
		float64(item.ViewCount)*ViewWeight
}
