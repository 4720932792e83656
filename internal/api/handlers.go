// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/logging"
	ws "github.com/tomtom215/snapgraph/internal/websocket"
)

// RecordStore is the persistence used by the record endpoints.
// Satisfied by *store.RecordStore.
type RecordStore interface {
	GetRecord(ctx context.Context, id string) (discovery.Record, error)
	PutRecords(ctx context.Context, records []discovery.Record) error
	Count(ctx context.Context) (int, error)
}

// CandidateSource resolves a source record and its candidate pool.
// Satisfied by *provider.Resilient.
type CandidateSource interface {
	Source(ctx context.Context, id string) (discovery.Record, error)
	CandidatePool(ctx context.Context, sourceID string) []discovery.Record
}

// Recommender is the engine surface the API exposes.
// Satisfied by *discovery.Engine.
type Recommender interface {
	GenerateRecommendations(ctx context.Context, source discovery.Record, pool []discovery.Record, maxResults int) (*discovery.RecommendationResult, error)
	State() discovery.State
	Profile() discovery.ProfileSnapshot
	Settings() *discovery.Settings
}

// ClusterTrigger requests an asynchronous clustering pass.
// Satisfied by *services.AnalysisService.
type ClusterTrigger interface {
	Trigger() error
}

// HandlerConfig holds the request-scoped limits for handlers.
type HandlerConfig struct {
	// RequestTimeout bounds a recommendation cycle.
	// Default: 30s
	RequestTimeout time.Duration

	// MaxImportBytes caps a PUT /records body.
	// Default: 32 MiB
	MaxImportBytes int64

	// AllowedOrigins is checked on WebSocket upgrades. "*" allows any.
	AllowedOrigins []string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health endpoint
//   - handlers_records.go: record import, lookup and recommendations
//   - handlers_discovery.go: clusters, state, profile and settings
//   - handlers_websocket.go: WebSocket event stream
type Handler struct {
	store     RecordStore
	source    CandidateSource
	engine    Recommender
	clusters  ClusterTrigger
	hub       *ws.Hub
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a new API handler. hub and clusters may be nil; the
// endpoints that need them then answer 503.
func NewHandler(store RecordStore, source CandidateSource, engine Recommender, clusters ClusterTrigger, hub *ws.Hub, cfg HandlerConfig) *Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxImportBytes <= 0 {
		cfg.MaxImportBytes = 32 << 20
	}
	return &Handler{
		store:     store,
		source:    source,
		engine:    engine,
		clusters:  clusters,
		hub:       hub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// browsers always send Origin; an empty one would bypass CORS
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowed := range h.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
