// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/fieldfeed/internal/models"
)

// CursorVersion is the current cursor encoding version. Decoding rejects
// any other version so future sort modes can add cursor variants without
// breaking old clients.
const CursorVersion = 1

// EncodeCursor serializes the position of the last item on a page into an
// opaque base64url token. The token is tagged with the sort mode so it can
// only resume the ordering that produced it.
func EncodeCursor(mode SortMode, last models.ContentItem) string {
	cursor := mode.CursorFrom(last)
	data, err := json.Marshal(cursor)
	if err != nil {
		// A flat struct of scalars cannot fail to marshal.
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeCursor decodes and validates an opaque cursor token for a
// pagination session requested in mode. All failure paths wrap
// ErrInvalidCursor so callers can recover by restarting from a nil cursor.
func DecodeCursor(token string, mode SortMode) (*models.FeedCursor, error) {
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: bad base64 encoding: %v", ErrInvalidCursor, err)
	}

	var cursor models.FeedCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("%w: bad payload: %v", ErrInvalidCursor, err)
	}

	if cursor.Version != CursorVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidCursor, cursor.Version)
	}

	tag := SortMode(cursor.Mode)
	if _, ok := ParseSortMode(cursor.Mode); !ok {
		return nil, fmt.Errorf("%w: unknown sort mode %q", ErrInvalidCursor, cursor.Mode)
	}
	if !mode.AcceptsCursorMode(cursor.Mode) {
		return nil, fmt.Errorf("%w: cursor mode %q does not match requested sort %q", ErrInvalidCursor, cursor.Mode, mode)
	}

	if tag.UsesScore() && cursor.Score == nil {
		return nil, fmt.Errorf("%w: missing score for %q cursor", ErrInvalidCursor, cursor.Mode)
	}
	if cursor.CreatedAt.IsZero() {
		return nil, fmt.Errorf("%w: missing creation time", ErrInvalidCursor)
	}

	id, err := uuid.Parse(cursor.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad item id: %v", ErrInvalidCursor, err)
	}
	// Canonical lowercase form so string comparison matches byte order.
	cursor.ID = strings.ToLower(id.String())

	return &cursor, nil
}

// ResumeAllows reports whether item lies strictly after the cursor position
// in the cursor's descending order, i.e. whether a resumed page may include
// it. The comparison is lexicographic over the full sort-key tuple:
//
//	(primary < c.primary) OR
//	(primary = c.primary AND createdAt < c.createdAt) OR
//	(primary = c.primary AND createdAt = c.createdAt AND id < c.id)
//
// Single-field comparison with offset skipping is deliberately not offered:
// concurrent inserts and deletions shift offsets and cause skipped or
// duplicated items.
func ResumeAllows(c *models.FeedCursor, item models.ContentItem) bool {
	if c == nil {
		return true
	}

	if SortMode(c.Mode).UsesScore() && c.Score != nil {
		if item.EngagementScore != *c.Score {
			return item.EngagementScore < *c.Score
		}
	}
	if !item.CreatedAt.Equal(c.CreatedAt) {
		return item.CreatedAt.Before(c.CreatedAt)
	}
	return strings.ToLower(item.ID.String()) < c.ID
}
