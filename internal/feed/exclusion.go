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

// ExclusionSource looks up a viewer's exclusion preferences. An absent
// record means the viewer excludes nothing; implementations return a zero
// ExclusionSet rather than an error in that case.
type ExclusionSource interface {
	Exclusions(ctx context.Context, viewerID string) (models.ExclusionSet, error)
}

// ResolveExclusions loads the negative filter for a viewer. Anonymous
// callers (empty viewer id) get empty sets without touching the source.
// A source failure surfaces as ErrUpstreamUnavailable; absence of a
// preference record is not a fault and never reaches this path.
func ResolveExclusions(ctx context.Context, src ExclusionSource, viewerID string) (models.ExclusionSet, error) {
	if viewerID == "" {
		return models.ExclusionSet{}, nil
	}

	set, err := src.Exclusions(ctx, viewerID)
	if err != nil {
		return models.ExclusionSet{}, fmt.Errorf("%w: exclusion lookup: %v", ErrUpstreamUnavailable, err)
	}
	return set, nil
}
