// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package feed

import (
	"strings"

	"github.com/tomtom215/fieldfeed/internal/models"
)

// AffinityClause is the relevance predicate derived from a viewer's
// profile. Matching is inclusive: any one condition admits the item.
type AffinityClause struct {
	// Tags are the viewer's declared crop/topic tags, normalized.
	Tags []string

	// Region is the viewer's declared region, normalized, empty if none.
	Region string

	// Authors lists the author ids the viewer follows.
	Authors []string
}

// BuildAffinity derives the affinity clause for a viewer profile. It
// returns nil for a profile with no personalization signal at all, so a
// viewer with no declared affinity and no follows degrades to match-all
// rather than match-nothing.
func BuildAffinity(profile *models.ViewerProfile) *AffinityClause {
	if profile.IsEmpty() {
		return nil
	}

	clause := &AffinityClause{
		Tags:    make([]string, 0, len(profile.Tags)),
		Region:  NormalizeTag(profile.Region),
		Authors: profile.Following,
	}
	for _, tag := range profile.Tags {
		if t := NormalizeTag(tag); t != "" {
			clause.Tags = append(clause.Tags, t)
		}
	}
	return clause
}

// Matches reports whether item satisfies the affinity predicate: its tag
// set intersects the viewer's tags, or its region equals the viewer's
// region, or its author is followed.
func (c *AffinityClause) Matches(item models.ContentItem) bool {
	if c == nil {
		return true
	}

	for _, want := range c.Tags {
		if containsTag(item.Tags, want) {
			return true
		}
	}

	if c.Region != "" && NormalizeTag(item.Region) == c.Region {
		return true
	}

	for _, author := range c.Authors {
		if item.AuthorID == author {
			return true
		}
	}

	return false
}

// NormalizeTag canonicalizes a crop/topic/region tag for case-insensitive
// exact matching. Commas are stripped: the content store serializes tag
// lists comma-joined, so a comma inside a tag would split it on read.
func NormalizeTag(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.ToLower(strings.TrimSpace(s))
}

// containsTag reports whether tags contains want. Both sides are compared
// in normalized form.
func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if NormalizeTag(t) == want {
			return true
		}
	}
	return false
}
