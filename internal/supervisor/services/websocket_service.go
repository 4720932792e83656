// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package services

import (
	"context"
)

// ContextHub interface matches *websocket.Hub's RunWithContext method.
//
// Satisfied by *websocket.Hub from internal/websocket/hub.go.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// WebSocketHubService wraps a WebSocket hub as a supervised service.
//
// The hub's RunWithContext method already implements the suture.Service
// pattern, so this wrapper simply delegates to it and provides a name
// for logging.
//
// Example usage:
//
//	hub := websocket.NewHub()
//	svc := services.NewWebSocketHubService(hub)
//	tree.AddAnalysisService(svc)
type WebSocketHubService struct {
	hub  ContextHub
	name string
}

// NewWebSocketHubService creates a new WebSocket hub service wrapper.
func NewWebSocketHubService(hub ContextHub) *WebSocketHubService {
	return &WebSocketHubService{
		hub:  hub,
		name: "websocket-hub",
	}
}

// Serve implements suture.Service.
//
// The hub closes all clients and returns ctx.Err() on shutdown.
func (w *WebSocketHubService) Serve(ctx context.Context) error {
	return w.hub.RunWithContext(ctx)
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (w *WebSocketHubService) String() string {
	return w.name
}

// EventRunner matches *websocket.Forwarder's Run method.
type EventRunner interface {
	Run(ctx context.Context) error
}

// EventForwarderService supervises the relay from the event bus to the
// WebSocket hub. When the bus subscription closes, Run returns an error
// and suture restarts the forwarder with a fresh subscription.
//
// Example usage:
//
//	fwd := websocket.NewForwarder(bus, hub, logger)
//	tree.AddDataService(services.NewEventForwarderService(fwd))
type EventForwarderService struct {
	forwarder EventRunner
	name      string
}

// NewEventForwarderService creates a new event forwarder service wrapper.
func NewEventForwarderService(forwarder EventRunner) *EventForwarderService {
	return &EventForwarderService{
		forwarder: forwarder,
		name:      "event-forwarder",
	}
}

// Serve implements suture.Service.
func (e *EventForwarderService) Serve(ctx context.Context) error {
	return e.forwarder.Run(ctx)
}

// String implements fmt.Stringer for logging.
func (e *EventForwarderService) String() string {
	return e.name
}
