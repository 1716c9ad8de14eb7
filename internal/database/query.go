// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/fieldfeed/internal/feed"
	"github.com/tomtom215/fieldfeed/internal/models"
)

const contentColumns = `id, author_id, title, body, tags, region, created_at,
	like_count, comment_count, share_count, view_count, engagement_score`

// QueryPage implements feed.Store. It translates the plan into a filtered,
// ordered, tuple-seeked SELECT.
func (db *DB) QueryPage(ctx context.Context, plan feed.Plan, limit int) ([]models.ContentItem, error) {
	where, args := buildPlanConditions(plan)

	if plan.Resume != nil {
		cond, resumeArgs := resumeCondition(plan)
		where = append(where, cond)
		args = append(args, resumeArgs...)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM content_items
		WHERE %s
		ORDER BY %s
		LIMIT ?`,
		contentColumns, strings.Join(where, " AND "), orderClause(plan.Mode))
	args = append(args, limit)

	return db.queryItems(ctx, "query_page", query, args)
}

// QueryOffset implements feed.Store for offset pagination.
func (db *DB) QueryOffset(ctx context.Context, plan feed.Plan, limit, offset int) ([]models.ContentItem, error) {
	where, args := buildPlanConditions(plan)

	query := fmt.Sprintf(`
		SELECT %s
		FROM content_items
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`,
		contentColumns, strings.Join(where, " AND "), orderClause(plan.Mode))
	args = append(args, limit, offset)

	return db.queryItems(ctx, "query_offset", query, args)
}

// CountMatching implements feed.Store.
func (db *DB) CountMatching(ctx context.Context, plan feed.Plan) (int64, error) {
	where, args := buildPlanConditions(plan)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM content_items WHERE %s`,
		strings.Join(where, " AND "))

	result, err := db.execute("count_matching", func() (any, error) {
		var count int64
		if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
			return nil, err
		}
		return count, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count matching items: %w", err)
	}
	return result.(int64), nil
}

func (db *DB) queryItems(ctx context.Context, operation, query string, args []any) ([]models.ContentItem, error) {
	result, err := db.execute(operation, func() (any, error) {
		rows, err := db.conn.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rows.Close() }()

		var items []models.ContentItem
		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query content items: %w", err)
	}
	return result.([]models.ContentItem), nil
}

// buildPlanConditions translates the plan's predicate (everything except
// the resume position) into WHERE conditions with bound parameters.
func buildPlanConditions(plan feed.Plan) ([]string, []any) {
	conditions := []string{"NOT deleted"}
	var args []any

	for _, tag := range plan.RequireTags {
		conditions = append(conditions, "list_contains(string_split(tags, ','), ?)")
		args = append(args, tag)
	}

	if plan.Region != "" {
		conditions = append(conditions, "region = ?")
		args = append(args, plan.Region)
	}

	if n := len(plan.Exclusions.HiddenItemIDs); n > 0 {
		placeholders := make([]string, n)
		for i, id := range plan.Exclusions.HiddenItemIDs {
			placeholders[i] = "CAST(? AS UUID)"
			args = append(args, id)
		}
		conditions = append(conditions, fmt.Sprintf("id NOT IN (%s)", strings.Join(placeholders, ", ")))
	}

	if n := len(plan.Exclusions.MutedAuthorIDs); n > 0 {
		placeholders := make([]string, n)
		for i, author := range plan.Exclusions.MutedAuthorIDs {
			placeholders[i] = "?"
			args = append(args, author)
		}
		conditions = append(conditions, fmt.Sprintf("author_id NOT IN (%s)", strings.Join(placeholders, ", ")))
	}

	if cond, affinityArgs := buildAffinityCondition(plan.Affinity); cond != "" {
		conditions = append(conditions, cond)
		args = append(args, affinityArgs...)
	}

	return conditions, args
}

// buildAffinityCondition renders the affinity clause as a single OR group:
// any tag overlap, a region match, or a followed author satisfies it.
func buildAffinityCondition(clause *feed.AffinityClause) (string, []any) {
	if clause == nil {
		return "", nil
	}

	var parts []string
	var args []any

	for _, tag := range clause.Tags {
		parts = append(parts, "list_contains(string_split(tags, ','), ?)")
		args = append(args, tag)
	}
	if clause.Region != "" {
		parts = append(parts, "region = ?")
		args = append(args, clause.Region)
	}
	if n := len(clause.Authors); n > 0 {
		placeholders := make([]string, n)
		for i, author := range clause.Authors {
			placeholders[i] = "?"
			args = append(args, author)
		}
		parts = append(parts, fmt.Sprintf("author_id IN (%s)", strings.Join(placeholders, ", ")))
	}

	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// resumeCondition renders the cursor's strictly-after predicate as a tuple
// comparison. Every sort key is descending, so one tuple "<" expresses the
// full lexicographic chain.
func resumeCondition(plan feed.Plan) (string, []any) {
	c := plan.Resume
	if feed.SortMode(c.Mode).UsesScore() && c.Score != nil {
		return "(engagement_score, created_at, id) < (?, ?, CAST(? AS UUID))",
			[]any{*c.Score, c.CreatedAt, c.ID}
	}
	return "(created_at, id) < (?, CAST(? AS UUID))",
		[]any{c.CreatedAt, c.ID}
}

func orderClause(mode feed.SortMode) string {
	if mode.UsesScore() {
		return "engagement_score DESC, created_at DESC, id DESC"
	}
	return "created_at DESC, id DESC"
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func parseItemID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed item id %q in store: %w", s, err)
	}
	return id, nil
}

func scanItem(row rowScanner) (models.ContentItem, error) {
	var (
		item    models.ContentItem
		idStr   string
		tagsStr string
	)
	err := row.Scan(
		&idStr, &item.AuthorID, &item.Title, &item.Body, &tagsStr, &item.Region,
		&item.CreatedAt,
		&item.LikeCount, &item.CommentCount, &item.ShareCount, &item.ViewCount,
		&item.EngagementScore,
	)
	if err != nil {
		return models.ContentItem{}, err
	}

	id, err := parseItemID(idStr)
	if err != nil {
		return models.ContentItem{}, err
	}
	item.ID = id

	if tagsStr != "" {
		item.Tags = strings.Split(tagsStr, ",")
	}
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}
