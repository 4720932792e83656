// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"sync"
	"time"
)

// neutralWeight is the seed value for every preference weight.
const neutralWeight = 0.5

// Profile holds personalization state for one library. It is the single
// piece of mutable state the engine keeps between calls. Writes are
// serialized; readers take snapshots.
type Profile struct {
	mu sync.RWMutex

	relationshipWeights map[RelationshipType]float64
	patternWeights      map[TemporalPattern]float64

	totalInteractions    int64
	positiveInteractions int64
	successRate          float64
	lastUpdate           time.Time
}

// ProfileSnapshot is an immutable copy of a profile.
type ProfileSnapshot struct {
	RelationshipWeights  map[RelationshipType]float64 `json:"relationship_weights"`
	TemporalWeights      map[TemporalPattern]float64  `json:"temporal_weights"`
	TotalInteractions    int64                        `json:"total_interactions"`
	PositiveInteractions int64                        `json:"positive_interactions"`
	SuccessRate          float64                      `json:"success_rate"`
	LastUpdate           time.Time                    `json:"last_update"`
}

// NewProfile creates a profile with every weight set to neutral.
func NewProfile() *Profile {
	p := &Profile{
		relationshipWeights: make(map[RelationshipType]float64),
		patternWeights:      make(map[TemporalPattern]float64),
	}
	for _, t := range AllRelationshipTypes() {
		p.relationshipWeights[t] = neutralWeight
	}
	for _, pattern := range AllTemporalPatterns() {
		p.patternWeights[pattern] = neutralWeight
	}
	return p
}

// Update applies the outcome of a completed recommendation cycle.
//
// Only the update time is recorded for now. The weights and counters are the
// extension point for learning from user feedback and stay at their seeds.
func (p *Profile) Update(_ *RecommendationResult, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastUpdate = at
}

// RelationshipWeight returns the preference weight of a relationship type.
func (p *Profile) RelationshipWeight(t RelationshipType) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if w, ok := p.relationshipWeights[t]; ok {
		return w
	}
	return neutralWeight
}

// LastUpdate returns when the profile was last updated.
func (p *Profile) LastUpdate() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastUpdate
}

// Snapshot returns a copy of the profile.
func (p *Profile) Snapshot() ProfileSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	rel := make(map[RelationshipType]float64, len(p.relationshipWeights))
	for k, v := range p.relationshipWeights {
		rel[k] = v
	}
	pat := make(map[TemporalPattern]float64, len(p.patternWeights))
	for k, v := range p.patternWeights {
		pat[k] = v
	}

	return ProfileSnapshot{
		RelationshipWeights:  rel,
		TemporalWeights:      pat,
		TotalInteractions:    p.totalInteractions,
		PositiveInteractions: p.positiveInteractions,
		SuccessRate:          p.successRate,
		LastUpdate:           p.lastUpdate,
	}
}
