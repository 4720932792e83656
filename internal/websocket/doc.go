// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package websocket pushes discovery events to connected UI clients.

Key Components:

  - Hub: manages client connections and broadcasts messages
  - Client: one WebSocket connection with read and write goroutines
  - Forwarder: subscribes to the event bus and hands each event to the hub

Architecture:

	engine ──Notify──▶ events.Bus ──Subscribe──▶ Forwarder ──BroadcastEvent──▶ Hub
	                                                                           │
	                                                        ┌─────────┬────────┴┐
	                                                     Client1   Client2   Client3

Each client has two goroutines:
  - readPump: reads from the socket, answers pings, applies subscriptions
  - writePump: writes queued messages and sends protocol pings

Message Types:

  - analysis_started, analysis_completed, analysis_failed: one recommendation cycle
  - clusters_updated: a clustering run published new content relationships
  - ping / pong: application-level keepalive
  - subscribe: client to server, restricts which event types it receives

Every message is {"type": "...", "data": ...}; for discovery events data is
the discovery.Event.

Determinism:

Clients receive monotonically increasing IDs. Broadcasts and shutdown walk
clients in ID order, and RunWithContext checks shutdown first, then client
lifecycle, then broadcasts.

Backpressure:

Broadcasts are queued on a buffered channel and dropped with a warning when
it is full. A client whose send buffer is full is disconnected.

Usage:

	hub := websocket.NewHub()
	go hub.RunWithContext(ctx)

	fwd := websocket.NewForwarder(bus, hub, logger)
	go fwd.Run(ctx)

Both are run under the supervisor tree in production.
*/
package websocket
