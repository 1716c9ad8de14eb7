// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/fieldfeed/internal/logging"
	"github.com/tomtom215/fieldfeed/internal/metrics"
	"github.com/tomtom215/fieldfeed/internal/models"
)

// Service is the feed façade. It resolves the effective sort mode, loads
// the viewer's profile and exclusions, builds the retrieval plan, runs the
// paginator, and applies the cold-start fallback. It is the only entry
// point the API layer calls for reads.
type Service struct {
	paginator  *Paginator
	profiles   ProfileSource
	exclusions ExclusionSource

	defaultLimit int
	maxLimit     int
}

// Limits controls page-size clamping. Zero values fall back to 20/50.
type Limits struct {
	Default int
	Max     int
}

// NewService assembles the feed façade from its data sources.
func NewService(store Store, profiles ProfileSource, exclusions ExclusionSource, limits Limits) *Service {
	if limits.Default <= 0 {
		limits.Default = 20
	}
	if limits.Max <= 0 {
		limits.Max = 50
	}
	return &Service{
		paginator:    NewPaginator(store),
		profiles:     profiles,
		exclusions:   exclusions,
		defaultLimit: limits.Default,
		maxLimit:     limits.Max,
	}
}

// Request is one feed read. Zero values mean "not supplied": an empty
// ViewerID is an anonymous read, an empty Sort picks the viewer-dependent
// default, a zero Limit takes the configured default page size.
type Request struct {
	ViewerID string

	// Sort is "newest", "engagement", or "personalized". Empty resolves to
	// personalized for identified viewers and newest for anonymous ones.
	Sort string

	// Cursor is the opaque continuation token from a previous page.
	Cursor string

	// Offset switches to offset pagination when non-nil. Mutually
	// exclusive with Cursor; Cursor wins when both are set.
	Offset *int

	// Limit is the requested page size, clamped to [1, max]; 0 means the
	// default.
	Limit int

	// Explicit filters. Any non-empty value suppresses affinity matching.
	Category string
	Crop     string
	Region   string
}

// GetFeed serves one page of the viewer's feed.
//
// Sort resolution, cursor validation, planning, and the cold-start
// fallback happen here in that order. The fallback fires only on an
// un-cursored personalized read whose affinity-constrained first page
// comes back empty: the same read is re-run engagement-ordered without
// the affinity clause, and the cursor it issues is engagement-tagged so
// continuation stays on the fallback pipeline.
func (s *Service) GetFeed(ctx context.Context, req Request) (models.Page, error) {
	start := time.Now()

	mode := s.resolveMode(req)
	limit := s.clampLimit(req.Limit)

	page, err := s.getFeed(ctx, req, mode, limit)
	metrics.RecordFeedRequest(string(mode), err, start)
	if err == nil {
		metrics.FeedPageSize.Observe(float64(len(page.Items)))
	}
	return page, err
}

func (s *Service) getFeed(ctx context.Context, req Request, mode SortMode, limit int) (models.Page, error) {
	// Offset pagination is the simple-listing mode; it never carries
	// affinity ranking. A viewer asking for page numbers gets the plain
	// engagement listing instead of a personalized pipeline.
	offsetMode := req.Cursor == "" && req.Offset != nil
	if offsetMode && mode == SortPersonalized {
		mode = SortEngagement
	}

	var resume *models.FeedCursor
	if req.Cursor != "" {
		c, err := DecodeCursor(req.Cursor, mode)
		if err != nil {
			metrics.CursorDecodeErrors.Inc()
			return models.Page{}, err
		}
		resume = c
		// A personalized session resumed with an engagement-tagged cursor
		// is the fallback pipeline continuing; stay on it.
		if mode == SortPersonalized && c.Mode == string(SortEngagement) {
			mode = SortEngagement
		}
	}

	exclusions, err := ResolveExclusions(ctx, s.exclusions, req.ViewerID)
	if err != nil {
		return models.Page{}, err
	}

	var profile *models.ViewerProfile
	if mode == SortPersonalized && req.ViewerID != "" {
		profile, err = s.profiles.Profile(ctx, req.ViewerID)
		if err != nil {
			return models.Page{}, fmt.Errorf("%w: profile lookup: %v", ErrUpstreamUnavailable, err)
		}
	}

	plan := BuildPlan(PlanInput{
		Mode:       mode,
		Category:   req.Category,
		Crop:       req.Crop,
		Region:     req.Region,
		Profile:    profile,
		Exclusions: exclusions,
		Resume:     resume,
	})

	if offsetMode {
		return s.paginator.OffsetPage(ctx, plan, limit, *req.Offset)
	}

	page, err := s.paginator.CursorPage(ctx, plan, limit)
	if err != nil {
		return models.Page{}, err
	}

	// Cold-start fallback: a first personalized page that matched nothing
	// under the affinity clause re-runs engagement-ordered without it.
	if resume == nil && len(page.Items) == 0 && plan.Affinity != nil {
		metrics.FeedFallbacksTotal.Inc()
		logging.Debug().
			Str("viewer_id", req.ViewerID).
			Msg("personalized feed empty, falling back to engagement ordering")
		return s.paginator.CursorPage(ctx, plan.WithoutAffinity(), limit)
	}

	return page, nil
}

// resolveMode picks the effective sort mode. Unrecognized sort strings fall
// back to the viewer-dependent default rather than erroring; anonymous
// personalized requests degrade to engagement since there is no profile to
// match against.
func (s *Service) resolveMode(req Request) SortMode {
	mode, ok := ParseSortMode(req.Sort)
	if !ok {
		if req.ViewerID != "" {
			mode = SortPersonalized
		} else {
			mode = SortNewest
		}
	}
	if mode == SortPersonalized && req.ViewerID == "" {
		mode = SortEngagement
	}
	return mode
}

// DefaultLimit reports the configured default page size. The API layer uses
// it to turn a page number into an offset when page_size is omitted.
func (s *Service) DefaultLimit() int {
	return s.defaultLimit
}

// clampLimit maps a requested page size into [1, max], with 0 (and any
// unparsable input the API maps to 0) taking the default.
func (s *Service) clampLimit(limit int) int {
	switch {
	case limit == 0:
		return s.defaultLimit
	case limit < 1:
		return 1
	case limit > s.maxLimit:
		return s.maxLimit
	default:
		return limit
	}
}

// IsInvalidCursor reports whether err is a cursor validation failure. The
// API layer maps it to a 400 with a dedicated error code.
func IsInvalidCursor(err error) bool {
	return errors.Is(err, ErrInvalidCursor)
}
