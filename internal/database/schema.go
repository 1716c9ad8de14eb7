// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package database

import (
	"context"
	"fmt"
)

// schemaStatements create the content store schema. Tags are stored as a
// comma-joined normalized string and filtered with
// list_contains(string_split(...)), which binds cleanly as a TEXT
// parameter where a LIST parameter would not.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS content_items (
		id UUID PRIMARY KEY,
		author_id TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		like_count BIGINT NOT NULL DEFAULT 0,
		comment_count BIGINT NOT NULL DEFAULT 0,
		share_count BIGINT NOT NULL DEFAULT 0,
		view_count BIGINT NOT NULL DEFAULT 0,
		engagement_score DOUBLE NOT NULL DEFAULT 0,
		deleted BOOLEAN NOT NULL DEFAULT FALSE
	)`,

	// Covering indexes for the two sort-key tuples.
	`CREATE INDEX IF NOT EXISTS idx_content_created
		ON content_items (created_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_content_score
		ON content_items (engagement_score DESC, created_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_content_author
		ON content_items (author_id)`,
}

func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
