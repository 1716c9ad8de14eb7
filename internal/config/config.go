// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package config provides layered configuration for Fieldfeed.
//
// Precedence, highest first: environment variables, optional YAML config
// file, built-in defaults. Loading is done with Koanf v2; see koanf.go.
package config

import "time"

// Config is the root configuration for the Fieldfeed server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Prefs    PrefsConfig    `koanf:"prefs"`
	API      APIConfig      `koanf:"api"`
	Events   EventsConfig   `koanf:"events"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// CORSOrigins lists allowed CORS origins. "*" allows all.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs / RateLimitWindow drive per-IP request rate limiting.
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DatabaseConfig holds DuckDB content store settings.
type DatabaseConfig struct {
	// Path is the database file path, or ":memory:" for an in-memory store.
	Path string `koanf:"path"`

	// MaxMemory is the DuckDB memory limit, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// PrefsConfig holds the BadgerDB preference store settings (viewer profiles
// and exclusion sets).
type PrefsConfig struct {
	// Path is the Badger data directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory runs Badger without disk persistence (tests, dev).
	InMemory bool `koanf:"in_memory"`

	// GCInterval is how often the value-log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`

	// CacheSize / CacheTTL bound the in-process LRU in front of the store.
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// APIConfig holds pagination bounds for the feed API.
type APIConfig struct {
	// DefaultPageSize is used when the caller omits or mangles the limit.
	DefaultPageSize int `koanf:"default_page_size"`

	// MaxPageSize is the hard ceiling a requested limit is clamped to.
	MaxPageSize int `koanf:"max_page_size"`
}

// EventsConfig holds the engagement event pipeline settings.
type EventsConfig struct {
	// Topic is the bus topic engagement events are published on.
	Topic string `koanf:"topic"`

	// Buffer is the gochannel output buffer size.
	Buffer int64 `koanf:"buffer"`

	// RetryCount / RetryInterval drive the router's retry middleware.
	RetryCount    int           `koanf:"retry_count"`
	RetryInterval time.Duration `koanf:"retry_interval"`

	// CloseTimeout is how long to wait for in-flight handlers on shutdown.
	CloseTimeout time.Duration `koanf:"close_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8460,
			Timeout:           30 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Database: DatabaseConfig{
			Path:      "/data/fieldfeed.duckdb",
			MaxMemory: "2GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Prefs: PrefsConfig{
			Path:       "/data/prefs",
			InMemory:   false,
			GCInterval: 10 * time.Minute,
			CacheSize:  4096,
			CacheTTL:   30 * time.Second,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     50,
		},
		Events: EventsConfig{
			Topic:         "content.engagement",
			Buffer:        1024,
			RetryCount:    3,
			RetryInterval: 100 * time.Millisecond,
			CloseTimeout:  30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
