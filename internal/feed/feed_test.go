// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/fieldfeed/internal/models"
)

// testItem builds a content item with a freshly generated UUIDv7 id. Items
// built in sequence therefore have ascending ids, matching production
// inserts.
func testItem(author string, createdAt time.Time, tags []string, region string, score float64) models.ContentItem {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return models.ContentItem{
		ID:              id,
		AuthorID:        author,
		Title:           "post by " + author,
		Tags:            tags,
		Region:          region,
		CreatedAt:       createdAt,
		EngagementScore: score,
	}
}

// memStore is an in-memory Store evaluating plans with the reference
// predicate and comparators. It mirrors what the DuckDB store does in SQL.
type memStore struct {
	mu    sync.Mutex
	items []models.ContentItem

	// failAll makes every query return an error, for upstream-failure
	// paths.
	failAll bool

	// queryCount tracks how many QueryPage calls were made, for asserting
	// fallback behavior.
	queryCount int
}

var errStoreDown = errors.New("store down")

func (s *memStore) add(items ...models.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

func (s *memStore) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Deleted = true
		}
	}
}

func (s *memStore) matching(plan Plan) []models.ContentItem {
	var out []models.ContentItem
	for _, item := range s.items {
		if plan.Matches(item) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return plan.Mode.Less(out[i], out[j])
	})
	return out
}

func (s *memStore) QueryPage(_ context.Context, plan Plan, limit int) ([]models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCount++
	if s.failAll {
		return nil, errStoreDown
	}
	var out []models.ContentItem
	for _, item := range s.matching(plan) {
		if !ResumeAllows(plan.Resume, item) {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memStore) QueryOffset(_ context.Context, plan Plan, limit, offset int) ([]models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return nil, errStoreDown
	}
	matched := s.matching(plan)
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *memStore) CountMatching(_ context.Context, plan Plan) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return 0, errStoreDown
	}
	return int64(len(s.matching(plan))), nil
}

// memPrefs is an in-memory ProfileSource and ExclusionSource.
type memPrefs struct {
	profiles   map[string]*models.ViewerProfile
	exclusions map[string]models.ExclusionSet
	fail       bool
}

func newMemPrefs() *memPrefs {
	return &memPrefs{
		profiles:   make(map[string]*models.ViewerProfile),
		exclusions: make(map[string]models.ExclusionSet),
	}
}

func (p *memPrefs) Profile(_ context.Context, viewerID string) (*models.ViewerProfile, error) {
	if p.fail {
		return nil, errStoreDown
	}
	return p.profiles[viewerID], nil
}

func (p *memPrefs) Exclusions(_ context.Context, viewerID string) (models.ExclusionSet, error) {
	if p.fail {
		return models.ExclusionSet{}, errStoreDown
	}
	return p.exclusions[viewerID], nil
}
