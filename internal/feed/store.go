// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"context"

	"github.com/tomtom215/fieldfeed/internal/models"
)

// Store executes retrieval plans against the content corpus. The DuckDB
// implementation lives in internal/database; tests use an in-memory store
// built on Plan.Matches and SortMode.Less.
//
// All three methods must apply the plan's full predicate (exclusions,
// explicit filters, affinity, soft-delete) and, for QueryPage, the resume
// predicate and the mode's total order.
type Store interface {
	// QueryPage returns up to limit items matching plan, ordered by
	// plan.Mode, positioned strictly after plan.Resume when it is set.
	QueryPage(ctx context.Context, plan Plan, limit int) ([]models.ContentItem, error)

	// QueryOffset returns up to limit items matching plan starting at the
	// given row offset, ordered by plan.Mode. Resume is ignored.
	QueryOffset(ctx context.Context, plan Plan, limit, offset int) ([]models.ContentItem, error)

	// CountMatching returns the number of items matching plan, ignoring
	// Resume and pagination.
	CountMatching(ctx context.Context, plan Plan) (int64, error)
}

// ProfileSource looks up a viewer's personalization profile. A missing
// profile is not an error: implementations return nil and the pipeline
// treats the viewer as cold-start.
type ProfileSource interface {
	Profile(ctx context.Context, viewerID string) (*models.ViewerProfile, error)
}
