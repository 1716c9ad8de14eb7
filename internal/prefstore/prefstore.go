// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package prefstore is the BadgerDB-backed viewer preference store. It
// holds the two per-viewer records the ranking pipeline consults: the
// personalization profile and the exclusion set. Both are small JSON
// values keyed by viewer id; Badger gives them durable, low-latency
// point lookups on the feed hot path.
package prefstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/fieldfeed/internal/config"
	"github.com/tomtom215/fieldfeed/internal/logging"
	"github.com/tomtom215/fieldfeed/internal/models"
)

// Key prefixes for BadgerDB storage.
const (
	profileKeyPrefix   = "profile:"
	exclusionKeyPrefix = "exclusion:"
)

// Store is the viewer preference store. It implements feed.ProfileSource
// and feed.ExclusionSource.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the preference store at the configured path.
func Open(cfg *config.PrefsConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}
	return &Store{db: db}, nil
}

// Profile returns the viewer's personalization profile, or nil when none
// is stored. A missing profile is the cold-start case, not an error.
func (s *Store) Profile(_ context.Context, viewerID string) (*models.ViewerProfile, error) {
	var profile models.ViewerProfile

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profileKeyPrefix + viewerID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// SetProfile stores the viewer's personalization profile.
func (s *Store) SetProfile(_ context.Context, viewerID string, profile models.ViewerProfile) error {
	profile.ID = viewerID
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(profileKeyPrefix+viewerID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	return nil
}

// Exclusions returns the viewer's exclusion set. A missing record means
// the viewer excludes nothing; the zero set is returned without error.
func (s *Store) Exclusions(_ context.Context, viewerID string) (models.ExclusionSet, error) {
	var set models.ExclusionSet

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(exclusionKeyPrefix + viewerID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &set)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.ExclusionSet{}, nil
	}
	if err != nil {
		return models.ExclusionSet{}, fmt.Errorf("failed to load exclusions: %w", err)
	}
	return set, nil
}

// SetExclusions stores the viewer's exclusion set. Storing the zero set
// deletes the record instead of keeping an empty value around.
func (s *Store) SetExclusions(_ context.Context, viewerID string, set models.ExclusionSet) error {
	key := []byte(exclusionKeyPrefix + viewerID)

	if set.IsZero() {
		err := s.db.Update(func(txn *badger.Txn) error {
			err := txn.Delete(key)
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to clear exclusions: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal exclusions: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("failed to store exclusions: %w", err)
	}
	return nil
}

// RunGC runs one Badger value-log garbage collection cycle. Call it
// periodically; badger.ErrNoRewrite (nothing worth collecting) is not an
// error.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return fmt.Errorf("preference store gc: %w", err)
	}
	return nil
}

// Close closes the underlying Badger database.
func (s *Store) Close() error {
	return s.db.Close()
}

// badgerLogger adapts Badger's logger interface onto zerolog. Badger's
// INFO output is operational noise at our scale; it logs at debug.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	logging.Error().Msgf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...any) {
	logging.Warn().Msgf("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...any) {
	logging.Debug().Msgf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...any) {
	logging.Debug().Msgf("badger: "+format, args...)
}

var _ badger.Logger = badgerLogger{}

// GCLoop runs RunGC on a ticker until ctx is cancelled. Intended to be run
// as a supervised service.
func (s *Store) GCLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("preference store gc failed")
			}
		}
	}
}
