// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8460 {
		t.Errorf("expected default port 8460, got %d", cfg.Server.Port)
	}
	if cfg.API.DefaultPageSize != 20 {
		t.Errorf("expected default page size 20, got %d", cfg.API.DefaultPageSize)
	}
	if cfg.API.MaxPageSize != 50 {
		t.Errorf("expected max page size 50, got %d", cfg.API.MaxPageSize)
	}
	if cfg.Events.Topic != "content.engagement" {
		t.Errorf("expected default events topic, got %q", cfg.Events.Topic)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_DEFAULT_PAGE_SIZE", "10")
	t.Setenv("EVENTS_RETRY_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000 from env, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug from env, got %q", cfg.Logging.Level)
	}
	if cfg.API.DefaultPageSize != 10 {
		t.Errorf("expected page size 10 from env, got %d", cfg.API.DefaultPageSize)
	}
	if cfg.Events.RetryInterval != 250*time.Millisecond {
		t.Errorf("expected retry interval 250ms from env, got %v", cfg.Events.RetryInterval)
	}
}

func TestLoadIgnoresUnmappedEnv(t *testing.T) {
	t.Setenv("RANDOM_UNRELATED_VAR", "true")

	if _, err := Load(); err != nil {
		t.Fatalf("Load failed with unmapped env var present: %v", err)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Server.CORSOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Server.CORSOrigins[0] != "https://a.example" {
		t.Errorf("expected trimmed origin, got %q", cfg.Server.CORSOrigins[0])
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"page size above cap", func(c *Config) { c.API.DefaultPageSize = 100 }},
		{"default above max", func(c *Config) { c.API.DefaultPageSize = 50; c.API.MaxPageSize = 20 }},
		{"empty topic", func(c *Config) { c.Events.Topic = "" }},
		{"bogus log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"missing prefs path", func(c *Config) { c.Prefs.Path = ""; c.Prefs.InMemory = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestEnvTransformFuncUnknownKey(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("expected PATH to be skipped, got %q", got)
	}
	if got := envTransformFunc("HTTP_PORT"); got != "server.port" {
		t.Errorf("expected server.port, got %q", got)
	}
}
