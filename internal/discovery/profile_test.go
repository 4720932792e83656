// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"testing"
	"time"
)

func TestNewProfile_NeutralSeeds(t *testing.T) {
	t.Parallel()

	snap := NewProfile().Snapshot()

	if len(snap.RelationshipWeights) != 8 {
		t.Errorf("Expected 8 relationship weights, got %d", len(snap.RelationshipWeights))
	}
	if len(snap.TemporalWeights) != 5 {
		t.Errorf("Expected 5 temporal weights, got %d", len(snap.TemporalWeights))
	}
	for k, w := range snap.RelationshipWeights {
		if w != 0.5 {
			t.Errorf("Relationship weight %s = %v, want 0.5", k, w)
		}
	}
	for k, w := range snap.TemporalWeights {
		if w != 0.5 {
			t.Errorf("Temporal weight %s = %v, want 0.5", k, w)
		}
	}
	if snap.TotalInteractions != 0 || snap.PositiveInteractions != 0 || snap.SuccessRate != 0 {
		t.Errorf("Expected zero counters, got %+v", snap)
	}
	if !snap.LastUpdate.IsZero() {
		t.Errorf("Expected zero last update, got %v", snap.LastUpdate)
	}
}

func TestProfile_UpdateOnlyTouchesLastUpdate(t *testing.T) {
	t.Parallel()

	p := NewProfile()
	before := p.Snapshot()
	at := time.Date(2026, 7, 1, 8, 30, 0, 0, time.UTC)

	p.Update(&RecommendationResult{RelatedContent: make([]RelatedItem, 4), Confidence: 0.4}, at)
	after := p.Snapshot()

	if !after.LastUpdate.Equal(at) {
		t.Errorf("LastUpdate = %v, want %v", after.LastUpdate, at)
	}
	if !p.LastUpdate().Equal(at) {
		t.Errorf("LastUpdate() = %v, want %v", p.LastUpdate(), at)
	}
	for k, w := range before.RelationshipWeights {
		if after.RelationshipWeights[k] != w {
			t.Errorf("Relationship weight %s changed from %v to %v", k, w, after.RelationshipWeights[k])
		}
	}
	if after.TotalInteractions != before.TotalInteractions {
		t.Error("Expected interaction counters to be unchanged")
	}
}

func TestProfile_SnapshotIsIndependent(t *testing.T) {
	t.Parallel()

	p := NewProfile()
	snap := p.Snapshot()
	snap.RelationshipWeights[RelationshipSemantic] = 0.99
	snap.TemporalWeights[PatternDaily] = 0.01

	if got := p.RelationshipWeight(RelationshipSemantic); got != 0.5 {
		t.Errorf("Profile mutated through snapshot: %v", got)
	}
	if got := p.Snapshot().TemporalWeights[PatternDaily]; got != 0.5 {
		t.Errorf("Profile mutated through snapshot: %v", got)
	}
}

func TestProfile_RelationshipWeightUnknown(t *testing.T) {
	t.Parallel()

	if got := NewProfile().RelationshipWeight(RelationshipType("unknown")); got != 0.5 {
		t.Errorf("RelationshipWeight(unknown) = %v, want 0.5", got)
	}
}
