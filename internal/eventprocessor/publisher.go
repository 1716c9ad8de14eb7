// Fieldfeed - Farmer Community Feed Ranking and Pagination Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fieldfeed

package eventprocessor

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/fieldfeed/internal/config"
	"github.com/tomtom215/fieldfeed/internal/metrics"
)

// Bus is the in-process engagement event bus. gochannel keeps the pipeline
// broker-free; the Publisher/Subscriber split in the API means an external
// broker can replace it without touching producers or the consumer.
type Bus struct {
	channel *gochannel.GoChannel
	topic   string
}

// NewBus creates the in-process event bus.
func NewBus(cfg *config.EventsConfig) *Bus {
	channel := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.Buffer,
		Persistent:          false,
	}, NewLoggerAdapter())

	return &Bus{channel: channel, topic: cfg.Topic}
}

// PublishEngagement serializes and publishes one engagement event.
func (b *Bus) PublishEngagement(event EngagementEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		metrics.EngagementEventsTotal.WithLabelValues(event.Kind, "publish_error").Inc()
		return fmt.Errorf("failed to marshal engagement event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := b.channel.Publish(b.topic, msg); err != nil {
		metrics.EngagementEventsTotal.WithLabelValues(event.Kind, "publish_error").Inc()
		return fmt.Errorf("failed to publish engagement event: %w", err)
	}

	metrics.EngagementEventsTotal.WithLabelValues(event.Kind, "published").Inc()
	return nil
}

// Subscriber exposes the bus's subscribe side for the router.
func (b *Bus) Subscriber() message.Subscriber {
	return b.channel
}

// Publisher exposes the bus's publish side (used by the poison queue).
func (b *Bus) Publisher() message.Publisher {
	return b.channel
}

// Topic returns the engagement topic name.
func (b *Bus) Topic() string {
	return b.topic
}

// Close shuts the bus down, releasing all subscribers.
func (b *Bus) Close() error {
	return b.channel.Close()
}
