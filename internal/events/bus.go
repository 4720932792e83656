// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/logging"
	"github.com/tomtom215/snapgraph/internal/metrics"
)

// Message metadata keys.
const (
	MetadataEventType     = "event_type"
	MetadataCorrelationID = "correlation_id"
)

// ErrBusClosed is returned by Publish and Subscribe after Close.
var ErrBusClosed = errors.New("event bus is closed")

// Config configures the event bus.
type Config struct {
	// Topic is the Watermill topic discovery events are published on.
	// Default: "discovery.events"
	Topic string

	// BufferSize is the per-subscriber output channel buffer.
	// Default: 256
	BufferSize int64
}

// DefaultConfig returns the default bus configuration.
func DefaultConfig() Config {
	return Config{
		Topic:      "discovery.events",
		BufferSize: 256,
	}
}

// Bus carries discovery events over an in-process Watermill GoChannel.
// It implements discovery.Notifier. Events published with no subscribers
// are dropped.
type Bus struct {
	pubsub *gochannel.GoChannel
	topic  string
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

var _ discovery.Notifier = (*Bus)(nil)

// NewBus creates an event bus.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBus(cfg Config, logger zerolog.Logger) *Bus {
	def := DefaultConfig()
	if cfg.Topic == "" {
		cfg.Topic = def.Topic
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}

	logger = logger.With().Str("component", "events").Logger()

	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: cfg.BufferSize},
			logging.NewWatermillAdapter(logger),
		),
		topic:  cfg.Topic,
		logger: logger,
	}
}

// Topic returns the topic events are published on.
func (b *Bus) Topic() string {
	return b.topic
}

// Notify publishes event. It satisfies discovery.Notifier.
//
//nolint:gocritic // hugeParam: Event passed by value to match the Notifier interface
func (b *Bus) Notify(ctx context.Context, event discovery.Event) error {
	return b.Publish(ctx, event)
}

// Publish encodes event as JSON and publishes it. The correlation ID from
// ctx is carried in message metadata; one is generated if ctx has none.
//
//nolint:gocritic // hugeParam: Event passed by value for immutability
func (b *Bus) Publish(ctx context.Context, event discovery.Event) (err error) {
	defer func() { metrics.RecordEventPublished(string(event.Type), err) }()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	payload, err := json.Marshal(&event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	correlationID := logging.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = logging.GenerateCorrelationID()
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataEventType, string(event.Type))
	msg.Metadata.Set(MetadataCorrelationID, correlationID)
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(b.topic, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	b.logger.Debug().
		Str("event_type", string(event.Type)).
		Str("source_id", event.SourceID).
		Str("message_uuid", msg.UUID).
		Str("correlation_id", correlationID).
		Msg("discovery event published")
	return nil
}

// Subscribe returns a channel of decoded events. The channel closes when ctx
// is done or the bus is closed. Messages that fail to decode are logged and
// acknowledged so they do not block delivery.
func (b *Bus) Subscribe(ctx context.Context) (<-chan discovery.Event, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrBusClosed
	}

	messages, err := b.pubsub.Subscribe(ctx, b.topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", b.topic, err)
	}

	out := make(chan discovery.Event)
	go b.decode(ctx, messages, out)
	return out, nil
}

func (b *Bus) decode(ctx context.Context, messages <-chan *message.Message, out chan<- discovery.Event) {
	defer close(out)

	for msg := range messages {
		var event discovery.Event
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			b.logger.Warn().
				Err(err).
				Str("message_uuid", msg.UUID).
				Msg("dropping undecodable discovery event")
			msg.Ack()
			continue
		}

		select {
		case out <- event:
			msg.Ack()
		case <-ctx.Done():
			return
		}
	}
}

// Close shuts the bus down and closes every subscriber channel.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	if err := b.pubsub.Close(); err != nil {
		return fmt.Errorf("close event bus: %w", err)
	}
	b.logger.Info().Msg("event bus closed")
	return nil
}
