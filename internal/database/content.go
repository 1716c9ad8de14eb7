// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/fieldfeed/internal/feed"
	"github.com/tomtom215/fieldfeed/internal/models"
)

// InsertContentItem stores a new content item. A zero ID is assigned a
// fresh UUIDv7 and a zero CreatedAt takes the current time, so id order
// follows creation order. Tags and region are normalized on the way in;
// every read path can then compare them verbatim.
func (db *DB) InsertContentItem(ctx context.Context, item models.ContentItem) (models.ContentItem, error) {
	if item.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return models.ContentItem{}, fmt.Errorf("failed to generate item id: %w", err)
		}
		item.ID = id
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	// DuckDB TIMESTAMP carries microsecond precision; truncate up front so
	// the stored value round-trips exactly into cursor tuples.
	item.CreatedAt = item.CreatedAt.UTC().Truncate(time.Microsecond)

	normalized := make([]string, 0, len(item.Tags))
	for _, tag := range item.Tags {
		if t := feed.NormalizeTag(tag); t != "" {
			normalized = append(normalized, t)
		}
	}
	item.Tags = normalized
	item.Region = feed.NormalizeTag(item.Region)
	item.EngagementScore = feed.Score(item)

	_, err := db.execute("insert_content", func() (any, error) {
		return db.conn.ExecContext(ctx, `
			INSERT INTO content_items (
				id, author_id, title, body, tags, region, created_at,
				like_count, comment_count, share_count, view_count,
				engagement_score, deleted
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, FALSE)`,
			item.ID.String(), item.AuthorID, item.Title, item.Body,
			strings.Join(item.Tags, ","), item.Region, item.CreatedAt,
			item.LikeCount, item.CommentCount, item.ShareCount, item.ViewCount,
			item.EngagementScore,
		)
	})
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to insert content item: %w", err)
	}
	return item, nil
}

// GetContentItem fetches a single item by id. Soft-deleted items return
// ErrNotFound.
func (db *DB) GetContentItem(ctx context.Context, id uuid.UUID) (models.ContentItem, error) {
	result, err := db.execute("get_content", func() (any, error) {
		row := db.conn.QueryRowContext(ctx, `
			SELECT `+contentColumns+`
			FROM content_items
			WHERE id = CAST(? AS UUID) AND NOT deleted`,
			id.String(),
		)
		return scanItem(row)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ContentItem{}, ErrNotFound
		}
		return models.ContentItem{}, fmt.Errorf("failed to get content item: %w", err)
	}
	return result.(models.ContentItem), nil
}

// SoftDeleteContentItem marks an item deleted. The row stays in place so
// cursors issued before the deletion keep their resume position.
func (db *DB) SoftDeleteContentItem(ctx context.Context, id uuid.UUID) error {
	result, err := db.execute("delete_content", func() (any, error) {
		return db.conn.ExecContext(ctx, `
			UPDATE content_items SET deleted = TRUE
			WHERE id = CAST(? AS UUID) AND NOT deleted`,
			id.String(),
		)
	})
	if err != nil {
		return fmt.Errorf("failed to delete content item: %w", err)
	}
	affected, err := result.(sql.Result).RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyEngagement applies one counter delta and recomputes the stored
// engagement score in the same statement, keeping the score the ranking
// reads consistent with the counters it was derived from.
func (db *DB) ApplyEngagement(ctx context.Context, delta models.EngagementDelta) error {
	if delta.IsZero() {
		return nil
	}

	result, err := db.execute("apply_engagement", func() (any, error) {
		return db.conn.ExecContext(ctx, `
			UPDATE content_items SET
				like_count = like_count + ?,
				comment_count = comment_count + ?,
				share_count = share_count + ?,
				view_count = view_count + ?,
				engagement_score =
					(like_count + ?) * ? +
					(comment_count + ?) * ? +
					(share_count + ?) * ? +
					(view_count + ?) * ?
			WHERE id = CAST(? AS UUID) AND NOT deleted`,
			delta.Likes, delta.Comments, delta.Shares, delta.Views,
			delta.Likes, feed.LikeWeight,
			delta.Comments, feed.CommentWeight,
			delta.Shares, feed.ShareWeight,
			delta.Views, feed.ViewWeight,
			delta.ItemID.String(),
		)
	})
	if err != nil {
		return fmt.Errorf("failed to apply engagement delta: %w", err)
	}
	affected, err := result.(sql.Result).RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read engagement result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
