// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/tomtom215/fieldfeed/internal/config"
	"github.com/tomtom215/fieldfeed/internal/logging"
	"github.com/tomtom215/fieldfeed/internal/metrics"
	"github.com/tomtom215/fieldfeed/internal/models"
)

// CounterStore applies engagement deltas to stored content. Implemented by
// the DuckDB content store; an interface here keeps the pipeline testable
// and the import direction one-way.
type CounterStore interface {
	ApplyEngagement(ctx context.Context, delta models.EngagementDelta) error
}

// poisonTopicSuffix is appended to the engagement topic for messages that
// exhausted their retries.
const poisonTopicSuffix = ".poison"

// Processor consumes engagement events from the bus and folds them into
// the content store.
type Processor struct {
	router *message.Router
	bus    *Bus
	store  CounterStore
}

// NewProcessor builds the consuming router: panic recovery, bounded
// retries, and a poison queue on the same bus for messages that keep
// failing.
func NewProcessor(cfg *config.EventsConfig, bus *Bus, store CounterStore) (*Processor, error) {
	logger := NewLoggerAdapter()

	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryCount,
		InitialInterval: cfg.RetryInterval,
		Logger:          logger,
	}
	router.AddMiddleware(retry.Middleware)

	poison, err := middleware.PoisonQueue(bus.Publisher(), bus.Topic()+poisonTopicSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create poison queue: %w", err)
	}
	router.AddMiddleware(poison)

	p := &Processor{router: router, bus: bus, store: store}

	router.AddNoPublisherHandler(
		"engagement_counters",
		bus.Topic(),
		bus.Subscriber(),
		p.handleEngagement,
	)

	return p, nil
}

// handleEngagement processes one engagement event. Malformed events are
// dropped (acked) since retrying cannot fix them; store failures return an
// error so the retry middleware takes over.
func (p *Processor) handleEngagement(msg *message.Message) error {
	var event EngagementEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		metrics.EngagementEventsTotal.WithLabelValues("unknown", "malformed").Inc()
		logging.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping undecodable engagement event")
		return nil
	}

	if err := event.Validate(); err != nil {
		metrics.EngagementEventsTotal.WithLabelValues(event.Kind, "invalid").Inc()
		logging.Warn().Err(err).Str("event_id", event.EventID).Msg("dropping invalid engagement event")
		return nil
	}

	delta, err := event.Delta()
	if err != nil {
		metrics.EngagementEventsTotal.WithLabelValues(event.Kind, "invalid").Inc()
		logging.Warn().Err(err).Str("event_id", event.EventID).Msg("dropping unconvertible engagement event")
		return nil
	}

	if err := p.store.ApplyEngagement(msg.Context(), delta); err != nil {
		metrics.EngagementEventsTotal.WithLabelValues(event.Kind, "store_error").Inc()
		return fmt.Errorf("failed to apply engagement event %s: %w", event.EventID, err)
	}

	metrics.EngagementEventsTotal.WithLabelValues(event.Kind, "applied").Inc()
	return nil
}

// Run starts the router and blocks until ctx is cancelled or the router
// stops. The router is ready to receive once Running() closes.
func (p *Processor) Run(ctx context.Context) error {
	return p.router.Run(ctx)
}

// Running returns a channel that closes once the router is running.
func (p *Processor) Running() <-chan struct{} {
	return p.router.Running()
}

// Close stops the router, waiting up to the configured close timeout for
// in-flight handlers.
func (p *Processor) Close() error {
	return p.router.Close()
}
