// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package events publishes discovery engine notifications over an in-process
Watermill GoChannel.

Bus implements discovery.Notifier, so it is handed to the engine with
discovery.WithNotifier. Each event becomes one Watermill message:

  - Payload: the event as JSON (goccy/go-json)
  - UUID: watermill.NewUUID()
  - Metadata "event_type": analysis_started, analysis_completed,
    analysis_failed or clusters_updated
  - Metadata "correlation_id": taken from the publishing context

Subscribers receive decoded discovery.Event values. The WebSocket forwarder
is the main subscriber; it relays every event to connected clients.

Delivery is at-most-once and in-process. Events published while nobody is
subscribed are dropped.
*/
package events
