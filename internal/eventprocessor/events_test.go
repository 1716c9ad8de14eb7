// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package eventprocessor

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewEngagementEvent(t *testing.T) {
	t.Parallel()

	itemID := uuid.New()
	event := NewEngagementEvent(itemID, "v1", KindLike)

	if err := event.Validate(); err != nil {
		t.Fatalf("freshly built event invalid: %v", err)
	}
	if event.ItemID != itemID.String() || event.Count != 1 || event.Kind != KindLike {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestEngagementEvent_Validate(t *testing.T) {
	t.Parallel()

	base := func() EngagementEvent {
		return NewEngagementEvent(uuid.New(), "v1", KindComment)
	}

	tests := []struct {
		name    string
		mutate  func(*EngagementEvent)
		wantErr bool
	}{
		{"valid", func(*EngagementEvent) {}, false},
		{"anonymous viewer allowed", func(e *EngagementEvent) { e.ViewerID = "" }, false},
		{"negative count is a retraction", func(e *EngagementEvent) { e.Count = -1 }, false},
		{"missing event id", func(e *EngagementEvent) { e.EventID = "" }, true},
		{"non-uuid event id", func(e *EngagementEvent) { e.EventID = "abc" }, true},
		{"non-uuid item id", func(e *EngagementEvent) { e.ItemID = "item-1" }, true},
		{"unknown kind", func(e *EngagementEvent) { e.Kind = "bookmark" }, true},
		{"zero count", func(e *EngagementEvent) { e.Count = 0 }, true},
		{"zero timestamp", func(e *EngagementEvent) { e.OccurredAt = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			event := base()
			tt.mutate(&event)
			err := event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngagementEvent_Delta(t *testing.T) {
	t.Parallel()

	itemID := uuid.New()

	tests := []struct {
		kind  string
		count int64
		check func(t *testing.T, likes, comments, shares, views int64)
	}{
		{KindLike, 2, func(t *testing.T, l, c, s, v int64) {
			if l != 2 || c != 0 || s != 0 || v != 0 {
				t.Errorf("like delta = %d/%d/%d/%d", l, c, s, v)
			}
		}},
		{KindComment, 1, func(t *testing.T, l, c, s, v int64) {
			if c != 1 {
				t.Errorf("comment delta = %d", c)
			}
		}},
		{KindShare, 1, func(t *testing.T, l, c, s, v int64) {
			if s != 1 {
				t.Errorf("share delta = %d", s)
			}
		}},
		{KindView, 5, func(t *testing.T, l, c, s, v int64) {
			if v != 5 {
				t.Errorf("view delta = %d", v)
			}
		}},
	}

	for _, tt := range tests {
		event := NewEngagementEvent(itemID, "", tt.kind)
		event.Count = tt.count

		delta, err := event.Delta()
		if err != nil {
			t.Fatalf("%s: Delta() error = %v", tt.kind, err)
		}
		if delta.ItemID != itemID {
			t.Errorf("%s: item id = %s", tt.kind, delta.ItemID)
		}
		tt.check(t, delta.Likes, delta.Comments, delta.Shares, delta.Views)
	}
}

func TestEngagementEvent_Delta_Rejections(t *testing.T) {
	t.Parallel()

	event := NewEngagementEvent(uuid.New(), "", KindLike)
	event.ItemID = "garbage"
	if _, err := event.Delta(); err == nil {
		t.Error("malformed item id must fail")
	}

	event = NewEngagementEvent(uuid.New(), "", KindLike)
	event.Kind = "bookmark"
	if _, err := event.Delta(); err == nil {
		t.Error("unknown kind must fail")
	}
}
