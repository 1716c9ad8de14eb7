// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/fieldfeed/internal/models"
)

func TestCursor_RoundTrip(t *testing.T) {
	t.Parallel()

	item := testItem("ana", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), nil, "", 17.5)

	for _, mode := range []SortMode{SortNewest, SortEngagement, SortPersonalized} {
		token := EncodeCursor(mode, item)
		if token == "" {
			t.Fatalf("%s: EncodeCursor returned empty token", mode)
		}

		got, err := DecodeCursor(token, mode)
		if err != nil {
			t.Fatalf("%s: DecodeCursor() error = %v", mode, err)
		}
		if got.Mode != string(mode) {
			t.Errorf("%s: mode tag = %q", mode, got.Mode)
		}
		if got.ID != item.ID.String() {
			t.Errorf("%s: id = %q, want %q", mode, got.ID, item.ID)
		}
		if !got.CreatedAt.Equal(item.CreatedAt) {
			t.Errorf("%s: created_at = %v, want %v", mode, got.CreatedAt, item.CreatedAt)
		}
		if mode.UsesScore() {
			if got.Score == nil || *got.Score != 17.5 {
				t.Errorf("%s: score = %v, want 17.5", mode, got.Score)
			}
		} else if got.Score != nil {
			t.Errorf("%s: unexpected score %v", mode, *got.Score)
		}
	}
}

func TestDecodeCursor_Rejections(t *testing.T) {
	t.Parallel()

	valid := func(mutate func(c *models.FeedCursor)) string {
		c := SortEngagement.CursorFrom(testItem("ana", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), nil, "", 5))
		mutate(&c)
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatal(err)
		}
		return base64.URLEncoding.EncodeToString(data)
	}

	tests := []struct {
		name  string
		token string
		mode  SortMode
	}{
		{
			name:  "not base64",
			token: "not/valid/base64!!",
			mode:  SortNewest,
		},
		{
			name:  "base64 of garbage",
			token: base64.URLEncoding.EncodeToString([]byte("{truncated")),
			mode:  SortNewest,
		},
		{
			name:  "unsupported version",
			token: valid(func(c *models.FeedCursor) { c.Version = 99 }),
			mode:  SortEngagement,
		},
		{
			name:  "unknown mode tag",
			token: valid(func(c *models.FeedCursor) { c.Mode = "trending" }),
			mode:  SortEngagement,
		},
		{
			name:  "mode mismatch",
			token: valid(func(c *models.FeedCursor) {}),
			mode:  SortNewest,
		},
		{
			name:  "personalized tag on engagement request",
			token: valid(func(c *models.FeedCursor) { c.Mode = "personalized" }),
			mode:  SortEngagement,
		},
		{
			name:  "missing score for score mode",
			token: valid(func(c *models.FeedCursor) { c.Score = nil }),
			mode:  SortEngagement,
		},
		{
			name:  "zero creation time",
			token: valid(func(c *models.FeedCursor) { c.CreatedAt = time.Time{} }),
			mode:  SortEngagement,
		},
		{
			name:  "malformed uuid",
			token: valid(func(c *models.FeedCursor) { c.ID = "not-a-uuid" }),
			mode:  SortEngagement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeCursor(tt.token, tt.mode)
			if err == nil {
				t.Fatal("DecodeCursor() succeeded, want error")
			}
			if !errors.Is(err, ErrInvalidCursor) {
				t.Errorf("error %v does not wrap ErrInvalidCursor", err)
			}
		})
	}
}

func TestDecodeCursor_AcceptsEngagementTagForPersonalized(t *testing.T) {
	t.Parallel()

	item := testItem("ana", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), nil, "", 5)
	token := EncodeCursor(SortEngagement, item)

	got, err := DecodeCursor(token, SortPersonalized)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if got.Mode != string(SortEngagement) {
		t.Errorf("mode tag = %q, want engagement", got.Mode)
	}
}

func TestDecodeCursor_CanonicalizesID(t *testing.T) {
	t.Parallel()

	c := SortNewest.CursorFrom(testItem("ana", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), nil, "", 0))
	c.ID = strings.ToUpper(c.ID)
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecodeCursor(base64.URLEncoding.EncodeToString(data), SortNewest)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if got.ID != strings.ToLower(c.ID) {
		t.Errorf("id not canonicalized: %q", got.ID)
	}
}

func TestResumeAllows(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	boundary := testItem("ana", at, nil, "", 10)
	cursor := SortEngagement.CursorFrom(boundary)

	lowerScore := testItem("ben", at.Add(time.Hour), nil, "", 5)
	higherScore := testItem("cid", at.Add(-time.Hour), nil, "", 20)
	sameScoreOlder := testItem("dee", at.Add(-time.Minute), nil, "", 10)
	sameScoreNewer := testItem("eve", at.Add(time.Minute), nil, "", 10)

	if ResumeAllows(nil, boundary) != true {
		t.Error("nil cursor must allow everything")
	}
	if ResumeAllows(&cursor, boundary) {
		t.Error("the boundary item itself must be excluded")
	}
	if !ResumeAllows(&cursor, lowerScore) {
		t.Error("lower score lies after the cursor")
	}
	if ResumeAllows(&cursor, higherScore) {
		t.Error("higher score lies before the cursor")
	}
	if !ResumeAllows(&cursor, sameScoreOlder) {
		t.Error("same score, older creation time lies after the cursor")
	}
	if ResumeAllows(&cursor, sameScoreNewer) {
		t.Error("same score, newer creation time lies before the cursor")
	}
}

func TestResumeAllows_NewestIgnoresScore(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	boundary := testItem("ana", at, nil, "", 0)
	cursor := SortNewest.CursorFrom(boundary)

	older := testItem("ben", at.Add(-time.Second), nil, "", 1000)
	newer := testItem("cid", at.Add(time.Second), nil, "", 0)

	if !ResumeAllows(&cursor, older) {
		t.Error("older item lies after a newest cursor regardless of score")
	}
	if ResumeAllows(&cursor, newer) {
		t.Error("newer item lies before a newest cursor")
	}
}
