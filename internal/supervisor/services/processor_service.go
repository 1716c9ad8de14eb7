// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package services

import (
	"context"
	"fmt"
)

// EngagementProcessor matches the eventprocessor.Processor lifecycle without
// importing the package.
type EngagementProcessor interface {
	Run(ctx context.Context) error
	Running() <-chan struct{}
}

// ProcessorService runs the engagement event processor as a supervised
// service. The processor's Run already blocks until its context is canceled,
// so the wrapper only normalizes the return value for suture.
type ProcessorService struct {
	processor EngagementProcessor
	name      string
}

// NewProcessorService wraps processor for supervision.
func NewProcessorService(processor EngagementProcessor) *ProcessorService {
	return &ProcessorService{
		processor: processor,
		name:      "engagement-processor",
	}
}

// Serve implements suture.Service. A processor crash is returned so suture
// restarts it; a clean stop after cancellation returns ctx.Err().
func (s *ProcessorService) Serve(ctx context.Context) error {
	if err := s.processor.Run(ctx); err != nil {
		return fmt.Errorf("engagement processor failed: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *ProcessorService) String() string {
	return s.name
}
