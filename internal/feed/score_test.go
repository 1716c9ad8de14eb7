// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"math"
	"testing"

	"github.com/tomtom215/fieldfeed/internal/models"
)

func TestScore_TableDriven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item models.ContentItem
		want float64
	}{
		{
			name: "zero counters score zero",
			item: models.ContentItem{},
			want: 0,
		},
		{
			name: "single like",
			item: models.ContentItem{LikeCount: 1},
			want: 2.0,
		},
		{
			name: "single comment",
			item: models.ContentItem{CommentCount: 1},
			want: 3.0,
		},
		{
			name: "single share",
			item: models.ContentItem{ShareCount: 1},
			want: 4.0,
		},
		{
			name: "ten views equal one like",
			item: models.ContentItem{ViewCount: 10},
			want: 2.0,
		},
		{
			name: "mixed counters",
			item: models.ContentItem{LikeCount: 3, CommentCount: 2, ShareCount: 1, ViewCount: 100},
			want: 3*2.0 + 2*3.0 + 1*4.0 + 100*0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Score(tt.item)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_IgnoresStoredScore(t *testing.T) {
	t.Parallel()

	// Score derives from counters only; a stale stored value must not leak
	// into the computation.
	item := models.ContentItem{LikeCount: 1, EngagementScore: 999}
	if got := Score(item); got != 2.0 {
		t.Errorf("Score() = %v, want 2.0", got)
	}
}
