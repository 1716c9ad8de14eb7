// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"github.com/tomtom215/fieldfeed/internal/models"
)

// Plan is an ordered, filtered retrieval plan: conceptually a predicate
// plus a sort-key list, executed by a content store. The store translates
// it into its own query language; the Matches method is the reference
// in-process evaluation of the same predicate.
type Plan struct {
	// Mode selects the total order and the cursor tuple shape.
	Mode SortMode

	// RequireTags holds explicit category/crop filters, normalized. Every
	// listed tag must be present on the item (AND across filters).
	RequireTags []string

	// Region is an explicit region filter, normalized, exact match when
	// non-empty.
	Region string

	// Affinity is the personalization predicate; nil means no affinity
	// constraint (explicit filters given, plain mode, or empty profile).
	Affinity *AffinityClause

	// Exclusions is the viewer's negative filter, applied in every mode.
	Exclusions models.ExclusionSet

	// Resume is the decoded cursor position, nil for a first page.
	Resume *models.FeedCursor
}

// PlanInput collects everything the pipeline builder composes into a Plan.
type PlanInput struct {
	Mode       SortMode
	Category   string
	Crop       string
	Region     string
	Profile    *models.ViewerProfile
	Exclusions models.ExclusionSet
	Resume     *models.FeedCursor
}

// BuildPlan composes exclusion, affinity, explicit filters, and sort mode
// into one retrieval plan.
//
// The affinity predicate participates only when the mode is personalized
// and no explicit filter was given: an explicit category/crop/region filter
// already states what the viewer wants, so personalization narrows nothing
// further (the engagement ordering still applies). An empty profile yields
// no affinity clause at all, keeping cold-start viewers on match-all.
func BuildPlan(in PlanInput) Plan {
	plan := Plan{
		Mode:       in.Mode,
		Region:     NormalizeTag(in.Region),
		Exclusions: in.Exclusions,
		Resume:     in.Resume,
	}

	for _, raw := range []string{in.Category, in.Crop} {
		if tag := NormalizeTag(raw); tag != "" {
			plan.RequireTags = append(plan.RequireTags, tag)
		}
	}

	explicitFilter := len(plan.RequireTags) > 0 || plan.Region != ""
	if in.Mode == SortPersonalized && !explicitFilter && in.Profile != nil {
		plan.Affinity = BuildAffinity(in.Profile)
	}

	return plan
}

// WithoutAffinity returns the engagement-ordered second stage of the
// cold-start fallback: the same plan minus the affinity predicate, so a
// viewer whose personalization matches nothing still receives content.
// Cursors issued by the fallback plan carry the engagement tag, fixing the
// pipeline for the remainder of that pagination session.
func (p Plan) WithoutAffinity() Plan {
	fallback := p
	fallback.Mode = SortEngagement
	fallback.Affinity = nil
	return fallback
}

// Matches is the reference evaluation of the plan's predicate, excluding
// the resume position (see ResumeAllows). Soft-deleted items never match.
func (p Plan) Matches(item models.ContentItem) bool {
	if item.Deleted {
		return false
	}

	id := item.ID.String()
	for _, hidden := range p.Exclusions.HiddenItemIDs {
		if id == hidden {
			return false
		}
	}
	for _, muted := range p.Exclusions.MutedAuthorIDs {
		if item.AuthorID == muted {
			return false
		}
	}

	for _, tag := range p.RequireTags {
		if !containsTag(item.Tags, tag) {
			return false
		}
	}

	if p.Region != "" && NormalizeTag(item.Region) != p.Region {
		return false
	}

	return p.Affinity.Matches(item)
}
