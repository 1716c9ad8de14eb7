// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package services

import (
	"context"
	"time"
)

// ValueLogGC matches the preference store's garbage-collection loop.
type ValueLogGC interface {
	GCLoop(ctx context.Context, interval time.Duration)
}

// PrefsGCService runs the preference store's Badger value-log garbage
// collector on a fixed interval under supervision.
type PrefsGCService struct {
	store    ValueLogGC
	interval time.Duration
	name     string
}

// NewPrefsGCService wraps store's GC loop for supervision. Intervals <= 0
// fall back to 10 minutes.
func NewPrefsGCService(store ValueLogGC, interval time.Duration) *PrefsGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &PrefsGCService{
		store:    store,
		interval: interval,
		name:     "prefs-gc",
	}
}

// Serve implements suture.Service. GCLoop blocks until ctx is canceled.
func (s *PrefsGCService) Serve(ctx context.Context) error {
	s.store.GCLoop(ctx, s.interval)
	return ctx.Err()
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *PrefsGCService) String() string {
	return s.name
}
