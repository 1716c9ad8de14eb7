// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/fieldfeed/internal/feed"
	"github.com/tomtom215/fieldfeed/internal/models"
)

func TestQueryPage_NewestOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	old := insertTestItem(t, db, "ana", base, nil, "")
	mid := insertTestItem(t, db, "ben", base.Add(time.Hour), nil, "")
	new_ := insertTestItem(t, db, "cid", base.Add(2*time.Hour), nil, "")

	items, err := db.QueryPage(ctx, feed.Plan{Mode: feed.SortNewest}, 10)
	if err != nil {
		t.Fatalf("QueryPage() error = %v", err)
	}
	wantOrder := []uuid.UUID{new_.ID, mid.ID, old.ID}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, items[i].ID, want)
		}
	}
}

func TestQueryPage_EngagementOrderingWithTieBreak(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	low := insertTestItem(t, db, "ana", base.Add(2*time.Hour), nil, "")
	highOld := insertTestItem(t, db, "ben", base, nil, "")
	highNew := insertTestItem(t, db, "cid", base.Add(time.Hour), nil, "")

	for _, item := range []models.ContentItem{highOld, highNew} {
		if err := db.ApplyEngagement(ctx, models.EngagementDelta{ItemID: item.ID, Shares: 5}); err != nil {
			t.Fatal(err)
		}
	}

	items, err := db.QueryPage(ctx, feed.Plan{Mode: feed.SortEngagement}, 10)
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []uuid.UUID{highNew.ID, highOld.ID, low.ID}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Errorf("position %d: got author %s", i, items[i].AuthorID)
		}
	}
}

func TestQueryPage_CursorChainingCoversCorpus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	total := 11
	for i := 0; i < total; i++ {
		item := insertTestItem(t, db, "author", base.Add(time.Duration(i)*time.Minute), nil, "")
		// Overlapping scores force the tie-break chain to do real work.
		if err := db.ApplyEngagement(ctx, models.EngagementDelta{ItemID: item.ID, Likes: int64(i % 3)}); err != nil {
			t.Fatal(err)
		}
	}

	plan := feed.Plan{Mode: feed.SortEngagement}
	seen := make(map[uuid.UUID]bool)
	var prev *models.ContentItem

	for pages := 0; pages < 10; pages++ {
		items, err := db.QueryPage(ctx, plan, 4)
		if err != nil {
			t.Fatal(err)
		}
		if len(items) == 0 {
			break
		}
		for i := range items {
			if seen[items[i].ID] {
				t.Fatalf("duplicate item %s across pages", items[i].ID)
			}
			seen[items[i].ID] = true
			if prev != nil && !plan.Mode.Less(*prev, items[i]) {
				t.Fatalf("ordering violated across page boundary at %s", items[i].ID)
			}
			prev = &items[i]
		}
		cursor := plan.Mode.CursorFrom(items[len(items)-1])
		plan.Resume = &cursor
	}

	if len(seen) != total {
		t.Errorf("cursor walk covered %d items, want %d", len(seen), total)
	}
}

func TestQueryPage_Filters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	wheatPunjab := insertTestItem(t, db, "ana", base.Add(time.Minute), []string{"wheat", "prices"}, "punjab")
	wheatKerala := insertTestItem(t, db, "ben", base.Add(2*time.Minute), []string{"wheat"}, "kerala")
	dairyPunjab := insertTestItem(t, db, "cid", base.Add(3*time.Minute), []string{"dairy"}, "punjab")

	tests := []struct {
		name string
		plan feed.Plan
		want []uuid.UUID
	}{
		{
			name: "tag filter",
			plan: feed.Plan{Mode: feed.SortNewest, RequireTags: []string{"wheat"}},
			want: []uuid.UUID{wheatKerala.ID, wheatPunjab.ID},
		},
		{
			name: "multiple tags are conjunctive",
			plan: feed.Plan{Mode: feed.SortNewest, RequireTags: []string{"wheat", "prices"}},
			want: []uuid.UUID{wheatPunjab.ID},
		},
		{
			name: "region filter",
			plan: feed.Plan{Mode: feed.SortNewest, Region: "punjab"},
			want: []uuid.UUID{dairyPunjab.ID, wheatPunjab.ID},
		},
		{
			name: "tag and region combine",
			plan: feed.Plan{Mode: feed.SortNewest, RequireTags: []string{"wheat"}, Region: "punjab"},
			want: []uuid.UUID{wheatPunjab.ID},
		},
		{
			name: "hidden item excluded",
			plan: feed.Plan{
				Mode:       feed.SortNewest,
				Exclusions: models.ExclusionSet{HiddenItemIDs: []string{wheatPunjab.ID.String()}},
			},
			want: []uuid.UUID{dairyPunjab.ID, wheatKerala.ID},
		},
		{
			name: "muted author excluded",
			plan: feed.Plan{
				Mode:       feed.SortNewest,
				Exclusions: models.ExclusionSet{MutedAuthorIDs: []string{"ben", "cid"}},
			},
			want: []uuid.UUID{wheatPunjab.ID},
		},
		{
			name: "affinity is disjunctive",
			plan: feed.Plan{
				Mode:     feed.SortPersonalized,
				Affinity: &feed.AffinityClause{Tags: []string{"dairy"}, Region: "kerala"},
			},
			want: []uuid.UUID{dairyPunjab.ID, wheatKerala.ID},
		},
		{
			name: "affinity by followed author",
			plan: feed.Plan{
				Mode:     feed.SortPersonalized,
				Affinity: &feed.AffinityClause{Authors: []string{"ana"}},
			},
			want: []uuid.UUID{wheatPunjab.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := db.QueryPage(ctx, tt.plan, 10)
			if err != nil {
				t.Fatalf("QueryPage() error = %v", err)
			}
			if len(items) != len(tt.want) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.want))
			}
			for i, want := range tt.want {
				if items[i].ID != want {
					t.Errorf("position %d: got %s, want %s", i, items[i].ID, want)
				}
			}
		})
	}
}

func TestQueryPage_ExcludesSoftDeleted(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	keep := insertTestItem(t, db, "ana", time.Now(), nil, "")
	gone := insertTestItem(t, db, "ben", time.Now(), nil, "")
	if err := db.SoftDeleteContentItem(ctx, gone.ID); err != nil {
		t.Fatal(err)
	}

	items, err := db.QueryPage(ctx, feed.Plan{Mode: feed.SortNewest}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != keep.ID {
		t.Errorf("items = %v", items)
	}
}

func TestQueryOffsetAndCountMatching(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		insertTestItem(t, db, "author", base.Add(time.Duration(i)*time.Minute), []string{"wheat"}, "")
	}
	insertTestItem(t, db, "other", base, []string{"dairy"}, "")

	plan := feed.Plan{Mode: feed.SortNewest, RequireTags: []string{"wheat"}}

	count, err := db.CountMatching(ctx, plan)
	if err != nil {
		t.Fatal(err)
	}
	if count != 7 {
		t.Errorf("CountMatching() = %d, want 7", count)
	}

	items, err := db.QueryOffset(ctx, plan, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("QueryOffset() returned %d items, want 2", len(items))
	}

	items, err = db.QueryOffset(ctx, plan, 3, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("past-end offset returned %d items", len(items))
	}
}
