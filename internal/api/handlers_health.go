// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package api

import (
	"net/http"
	"time"
)

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/tomtom215/snapgraph/internal/api.Version=...".
var Version = "dev"

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status          string     `json:"status"`
	Version         string     `json:"version"`
	StoreConnected  bool       `json:"store_connected"`
	RecordCount     int        `json:"record_count"`
	IsAnalyzing     bool       `json:"is_analyzing"`
	LastClusteredAt *time.Time `json:"last_clustered_at,omitempty"`
	WSClients       int        `json:"ws_clients"`
	Uptime          float64    `json:"uptime"`
}

// Health handles GET /api/v1/health.
// The store is probed with a record count; a failed probe reports "degraded"
// with 200 so dashboards can still read the body.
//
// @Summary Get system health status
// @Description Returns store connectivity, record count, clustering state, and uptime
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	count, err := h.store.Count(r.Context())
	status := "healthy"
	if err != nil {
		status = "degraded"
	}

	state := h.engine.State()
	health := HealthStatus{
		Status:         status,
		Version:        Version,
		StoreConnected: err == nil,
		RecordCount:    count,
		IsAnalyzing:    state.IsAnalyzing,
		Uptime:         time.Since(h.startTime).Seconds(),
	}
	if !state.LastClusteredAt.IsZero() {
		at := state.LastClusteredAt
		health.LastClusteredAt = &at
	}
	if h.hub != nil {
		health.WSClients = h.hub.GetClientCount()
	}

	respondSuccess(w, r, http.StatusOK, health, start)
}

// HealthLive handles GET /api/v1/health/live.
// Returns 200 while the process is up, regardless of dependencies.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Process is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready.
// Returns 503 until the record store answers.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse "Record store reachable"
// @Failure 503 {object} APIResponse "Record store unavailable"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Count(r.Context()); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Record store unavailable", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{"ready": true}, time.Now())
}
