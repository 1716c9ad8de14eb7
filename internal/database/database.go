// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/fieldfeed/internal/config"
	"github.com/tomtom215/fieldfeed/internal/logging"
	"github.com/tomtom215/fieldfeed/internal/metrics"
)

// DB wraps the DuckDB connection and provides content store access.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// cb guards every query path. DuckDB is in-process, so "unavailable"
	// here means wedged (lock contention, disk full, corrupted WAL), not
	// unreachable; failing fast keeps feed latency bounded.
	cb *gobreaker.CircuitBreaker[any]
}

// New opens the DuckDB database, applies connection tuning, and ensures
// the schema exists.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		cfg:  cfg,
		cb:   newBreaker(),
	}

	if err := db.initSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Str("max_memory", cfg.MaxMemory).
		Msg("content store ready")

	return db, nil
}

func newBreaker() *gobreaker.CircuitBreaker[any] {
	metrics.StoreBreakerState.Set(0)

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "content-store",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// An absent row is a valid answer, not a store fault; lookups for
		// missing or deleted ids must not count toward tripping.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("content store circuit breaker state change")
			if to == gobreaker.StateOpen {
				metrics.StoreBreakerState.Set(1)
			} else {
				metrics.StoreBreakerState.Set(0)
			}
		},
	})
}

// execute runs fn behind the circuit breaker and records query metrics
// under the given operation label.
func (db *DB) execute(operation string, fn func() (any, error)) (any, error) {
	start := time.Now()
	result, err := db.cb.Execute(fn)
	metrics.RecordStoreQuery(operation, err, start)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("content store rejecting queries: %w", err)
		}
		return nil, err
	}
	return result, nil
}

// Ping verifies the database answers queries. Used by the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	var one int
	if err := db.conn.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("content store ping: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
