// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/supervisor/services"
)

// ClustersResponse is the body of GET /api/v1/clusters.
type ClustersResponse struct {
	Clusters        []discovery.ContentCluster `json:"clusters"`
	Count           int                        `json:"count"`
	LastClusteredAt *time.Time                 `json:"last_clustered_at,omitempty"`
}

// Clusters handles GET /api/v1/clusters.
// Returns the last published clustering; it never starts a pass.
//
// @Summary List content clusters
// @Description Returns the last published clustering without starting a new pass
// @Tags Discovery
// @Produce json
// @Success 200 {object} APIResponse{data=ClustersResponse} "Clusters retrieved successfully"
// @Router /clusters [get]
func (h *Handler) Clusters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	state := h.engine.State()

	resp := ClustersResponse{
		Clusters: state.ContentRelationships,
		Count:    len(state.ContentRelationships),
	}
	if resp.Clusters == nil {
		resp.Clusters = []discovery.ContentCluster{}
	}
	if !state.LastClusteredAt.IsZero() {
		at := state.LastClusteredAt
		resp.LastClusteredAt = &at
	}

	respondSuccess(w, r, http.StatusOK, resp, start)
}

// RefreshClusters handles POST /api/v1/clusters/refresh.
// The pass runs asynchronously; completion is announced as a
// clusters_updated event on the WebSocket stream.
//
// @Summary Request a clustering pass
// @Description Queues an asynchronous clustering pass over the stored records
// @Tags Discovery
// @Produce json
// @Success 202 {object} APIResponse "Refresh accepted"
// @Failure 429 {object} APIResponse "Refresh already requested recently"
// @Failure 503 {object} APIResponse "Clustering service unavailable"
// @Router /clusters/refresh [post]
func (h *Handler) RefreshClusters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.clusters == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Clustering service unavailable", nil)
		return
	}

	if err := h.clusters.Trigger(); err != nil {
		if errors.Is(err, services.ErrRefreshThrottled) {
			respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Cluster refresh already requested recently", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to request cluster refresh", err)
		return
	}

	respondSuccess(w, r, http.StatusAccepted, map[string]interface{}{"accepted": true}, start)
}

// State handles GET /api/v1/state.
//
// @Summary Get discovery state
// @Tags Discovery
// @Produce json
// @Success 200 {object} APIResponse{data=discovery.State} "Discovery state"
// @Router /state [get]
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.engine.State(), time.Now())
}

// Profile handles GET /api/v1/profile.
//
// @Summary Get learning profile
// @Tags Discovery
// @Produce json
// @Success 200 {object} APIResponse{data=discovery.ProfileSnapshot} "Learning profile"
// @Router /profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.engine.Profile(), time.Now())
}

// Settings handles GET /api/v1/settings.
//
// @Summary Get discovery settings
// @Tags Discovery
// @Produce json
// @Success 200 {object} APIResponse{data=discovery.Settings} "Discovery settings"
// @Router /settings [get]
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, h.engine.Settings(), time.Now())
}
