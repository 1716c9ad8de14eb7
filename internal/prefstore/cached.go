// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package prefstore

import (
	"context"
	"time"

	"github.com/tomtom215/fieldfeed/internal/cache"
	"github.com/tomtom215/fieldfeed/internal/models"
)

// Cached wraps the preference store with short-TTL LRU caches for the two
// feed hot-path lookups. Writes go straight through and invalidate the
// cached entry, so a viewer sees their own preference update on the next
// feed request; other replicas converge within the TTL.
//
// A nil profile (cold start) is cached too, so anonymous-style viewers do
// not hit Badger on every page.
type Cached struct {
	store      *Store
	profiles   *cache.LRU[*models.ViewerProfile]
	exclusions *cache.LRU[models.ExclusionSet]
}

// NewCached wraps store. capacity and ttl bound both caches; non-positive
// values fall back to the cache package defaults.
func NewCached(store *Store, capacity int, ttl time.Duration) *Cached {
	return &Cached{
		store:      store,
		profiles:   cache.NewLRU[*models.ViewerProfile](capacity, ttl),
		exclusions: cache.NewLRU[models.ExclusionSet](capacity, ttl),
	}
}

// Profile returns the viewer's profile, consulting the cache first.
func (c *Cached) Profile(ctx context.Context, viewerID string) (*models.ViewerProfile, error) {
	if profile, ok := c.profiles.Get(viewerID); ok {
		return profile, nil
	}

	profile, err := c.store.Profile(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	c.profiles.Add(viewerID, profile)
	return profile, nil
}

// SetProfile writes through to the store and invalidates the cached entry.
func (c *Cached) SetProfile(ctx context.Context, viewerID string, profile models.ViewerProfile) error {
	if err := c.store.SetProfile(ctx, viewerID, profile); err != nil {
		return err
	}
	c.profiles.Remove(viewerID)
	return nil
}

// Exclusions returns the viewer's exclusion set, consulting the cache first.
func (c *Cached) Exclusions(ctx context.Context, viewerID string) (models.ExclusionSet, error) {
	if set, ok := c.exclusions.Get(viewerID); ok {
		return set, nil
	}

	set, err := c.store.Exclusions(ctx, viewerID)
	if err != nil {
		return models.ExclusionSet{}, err
	}
	c.exclusions.Add(viewerID, set)
	return set, nil
}

// SetExclusions writes through to the store and invalidates the cached
// entry.
func (c *Cached) SetExclusions(ctx context.Context, viewerID string, set models.ExclusionSet) error {
	if err := c.store.SetExclusions(ctx, viewerID, set); err != nil {
		return err
	}
	c.exclusions.Remove(viewerID)
	return nil
}
