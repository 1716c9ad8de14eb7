// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"context"
	"fmt"

	"github.com/tomtom215/fieldfeed/internal/models"
)

// Paginator turns a plan plus a page limit into one page of results with
// its continuation token. It owns the has-more probe and cursor issuance;
// the store only answers ordered, filtered queries.
type Paginator struct {
	store Store
}

// NewPaginator returns a Paginator reading from store.
func NewPaginator(store Store) *Paginator {
	return &Paginator{store: store}
}

// CursorPage fetches one cursor-mode page. It asks the store for limit+1
// items: the extra row is the has-more probe and is never returned to the
// caller. A next cursor is issued exactly when the probe row exists, so
// HasMore and NextCursor can never disagree.
func (p *Paginator) CursorPage(ctx context.Context, plan Plan, limit int) (models.Page, error) {
	if limit < 1 {
		return models.Page{}, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	items, err := p.store.QueryPage(ctx, plan, limit+1)
	if err != nil {
		return models.Page{}, fmt.Errorf("%w: query page: %v", ErrUpstreamUnavailable, err)
	}

	page := models.Page{
		Items:          items,
		PaginationMode: models.PaginationCursor,
	}
	if len(items) > limit {
		page.Items = items[:limit]
		page.HasMore = true
		token := EncodeCursor(plan.Mode, page.Items[limit-1])
		page.NextCursor = &token
	}
	if page.Items == nil {
		page.Items = []models.ContentItem{}
	}
	return page, nil
}

// OffsetPage fetches one offset-mode page together with the total match
// count. Offset pages trade the no-skip/no-duplicate guarantee for a total
// count; the response still carries a cursor for the last row so a client
// may switch to cursor continuation at any point.
func (p *Paginator) OffsetPage(ctx context.Context, plan Plan, limit, offset int) (models.Page, error) {
	if limit < 1 {
		return models.Page{}, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if offset < 0 {
		offset = 0
	}

	total, err := p.store.CountMatching(ctx, plan)
	if err != nil {
		return models.Page{}, fmt.Errorf("%w: count: %v", ErrUpstreamUnavailable, err)
	}

	items, err := p.store.QueryOffset(ctx, plan, limit, offset)
	if err != nil {
		return models.Page{}, fmt.Errorf("%w: query offset: %v", ErrUpstreamUnavailable, err)
	}

	page := models.Page{
		Items:          items,
		PaginationMode: models.PaginationOffset,
		Total:          &total,
	}
	if int64(offset+len(items)) < total && len(items) > 0 {
		page.HasMore = true
		token := EncodeCursor(plan.Mode, items[len(items)-1])
		page.NextCursor = &token
	}
	if page.Items == nil {
		page.Items = []models.ContentItem{}
	}
	return page, nil
}
