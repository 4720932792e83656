// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package api

import (
	"net/http"

	"github.com/tomtom215/snapgraph/internal/logging"
	ws "github.com/tomtom215/snapgraph/internal/websocket"
)

// WebSocket handles GET /api/v1/ws.
// Upgrades the connection and streams discovery events. Clients may send
// {"type":"subscribe","data":["clusters_updated"]} to filter event types.
//
// @Summary Discovery event stream
// @Description Upgrades to a WebSocket that streams analysis and clusters_updated events
// @Tags Realtime
// @Success 101 "Switching protocols"
// @Failure 503 {object} APIResponse "WebSocket service unavailable"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}
