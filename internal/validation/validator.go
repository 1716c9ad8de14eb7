// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

// Package validation wraps go-playground/validator with structured field
// errors suitable for API responses.
//
// Usage:
//
//	type FeedRequest struct {
//	    Cursor string `validate:"omitempty,base64url"`
//	    Sort   string `validate:"omitempty,oneof=newest engagement personalized"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    // err.Error() lists each failing field
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance returns the shared validator, creating it on first use.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

// Message returns a human-readable description of the failure.
func (e FieldError) Message() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, e.Param)
	case "base64url":
		return fmt.Sprintf("%s must be base64url-encoded", e.Field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s failed %s validation", e.Field, e.Rule)
	}
}

// Errors aggregates the field errors from one struct validation.
type Errors struct {
	Fields []FieldError
}

// Error implements the error interface, joining all field messages.
func (e *Errors) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message()
	}
	return strings.Join(msgs, "; ")
}

// ValidateStruct validates a struct against its validate tags. Returns nil
// when valid, or *Errors describing every failing field.
func ValidateStruct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: caller passed a non-struct
		return err
	}

	out := &Errors{Fields: make([]FieldError, 0, len(verrs))}
	for _, f := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: f.Field(),
			Rule:  f.Tag(),
			Param: f.Param(),
		})
	}
	return out
}
