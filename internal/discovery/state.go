// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"sync"
	"time"
)

// State is a snapshot of what the engine has published. Results and clusters
// are shared with the engine and must not be modified.
type State struct {
	IsAnalyzing          bool                  `json:"is_analyzing"`
	ActiveAnalyses       int                   `json:"active_analyses"`
	LastAnalysisResults  *RecommendationResult `json:"last_analysis_results,omitempty"`
	ContentRelationships []ContentCluster      `json:"content_relationships"`
	LastClusteredAt      time.Time             `json:"last_clustered_at"`
}

// EventType identifies a discovery notification.
type EventType string

const (
	EventAnalysisStarted   EventType = "analysis_started"
	EventAnalysisCompleted EventType = "analysis_completed"
	EventAnalysisFailed    EventType = "analysis_failed"
	EventClustersUpdated   EventType = "clusters_updated"
)

// Event is published when the engine starts or finishes work.
type Event struct {
	Type       EventType `json:"type"`
	SourceID   string    `json:"source_id,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	Matches    int       `json:"matches,omitempty"`
	Clusters   int       `json:"clusters,omitempty"`
	Records    int       `json:"records,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Notifier receives engine events. Implementations must not block for long;
// the engine calls Notify inline.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// publishedState guards the values exposed through Engine.State.
type publishedState struct {
	mu            sync.RWMutex
	active        int
	lastResult    *RecommendationResult
	relationships []ContentCluster
	clusteredAt   time.Time
}

func (s *publishedState) begin() {
	s.mu.Lock()
	s.active++
	s.mu.Unlock()
}

func (s *publishedState) end() {
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
}

func (s *publishedState) publishResult(r *RecommendationResult) {
	s.mu.Lock()
	s.lastResult = r
	s.mu.Unlock()
}

func (s *publishedState) publishClusters(clusters []ContentCluster, at time.Time) {
	s.mu.Lock()
	s.relationships = clusters
	s.clusteredAt = at
	s.mu.Unlock()
}

func (s *publishedState) snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clusters := make([]ContentCluster, len(s.relationships))
	copy(clusters, s.relationships)

	return State{
		IsAnalyzing:          s.active > 0,
		ActiveAnalyses:       s.active,
		LastAnalysisResults:  s.lastResult,
		ContentRelationships: clusters,
		LastClusteredAt:      s.clusteredAt,
	}
}
