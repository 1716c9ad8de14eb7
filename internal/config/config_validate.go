// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validatable mirrors Config with validation tags. Kept separate so the
// koanf tags on Config stay free of validator noise.
type validatable struct {
	Host            string `validate:"required"`
	Port            int    `validate:"gte=1,lte=65535"`
	DatabasePath    string `validate:"required"`
	MaxMemory       string `validate:"required"`
	DefaultPageSize int    `validate:"gte=1,lte=50"`
	MaxPageSize     int    `validate:"gte=1,lte=50"`
	EventsTopic     string `validate:"required"`
	LogLevel        string `validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	LogFormat       string `validate:"oneof=json console"`
}

// Validate checks the configuration for values that would misbehave at
// runtime. It returns the first problem found.
func (c *Config) Validate() error {
	v := validator.New()

	flat := validatable{
		Host:            c.Server.Host,
		Port:            c.Server.Port,
		DatabasePath:    c.Database.Path,
		MaxMemory:       c.Database.MaxMemory,
		DefaultPageSize: c.API.DefaultPageSize,
		MaxPageSize:     c.API.MaxPageSize,
		EventsTopic:     c.Events.Topic,
		LogLevel:        c.Logging.Level,
		LogFormat:       c.Logging.Format,
	}

	if err := v.Struct(&flat); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config field %s failed %s validation (value: %v)", f.Field(), f.Tag(), f.Value())
		}
		return err
	}

	if c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("api.default_page_size (%d) must not exceed api.max_page_size (%d)",
			c.API.DefaultPageSize, c.API.MaxPageSize)
	}

	if !c.Prefs.InMemory && c.Prefs.Path == "" {
		return fmt.Errorf("prefs.path is required unless prefs.in_memory is set")
	}

	return nil
}

// asValidationErrors unwraps err into validator.ValidationErrors.
func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors) //nolint:errorlint // validator returns this concrete type
	if ok {
		*target = verrs
	}
	return ok
}
