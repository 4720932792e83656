// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/snapgraph/internal/discovery"
)

// ErrSubscriptionClosed is returned by Forwarder.Run when the event source
// closes while the forwarder is still running.
var ErrSubscriptionClosed = errors.New("event subscription closed")

// EventSource is the subscribe side of the event bus.
type EventSource interface {
	Subscribe(ctx context.Context) (<-chan discovery.Event, error)
}

// EventBroadcaster receives events to fan out to clients.
type EventBroadcaster interface {
	BroadcastEvent(event discovery.Event)
}

// Forwarder relays discovery events from the event bus to WebSocket clients.
type Forwarder struct {
	source EventSource
	target EventBroadcaster
	logger zerolog.Logger
}

// NewForwarder creates a forwarder from source to target.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewForwarder(source EventSource, target EventBroadcaster, logger zerolog.Logger) *Forwarder {
	return &Forwarder{
		source: source,
		target: target,
		logger: logger.With().Str("component", "ws-forwarder").Logger(),
	}
}

// Run subscribes and forwards events until ctx is done, returning ctx.Err().
// If the subscription closes first, Run returns ErrSubscriptionClosed so a
// supervisor can restart it.
func (f *Forwarder) Run(ctx context.Context) error {
	events, err := f.source.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to discovery events: %w", err)
	}

	f.logger.Info().Msg("forwarding discovery events to websocket clients")

	forwarded := 0
	for {
		select {
		case <-ctx.Done():
			f.logger.Info().Int("forwarded", forwarded).Msg("event forwarder stopped")
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return ErrSubscriptionClosed
			}
			f.target.BroadcastEvent(event)
			forwarded++
		}
	}
}
