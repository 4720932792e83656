// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func TestEngine_FindClusters_Basic(t *testing.T) {
	t.Parallel()

	notifier := &mockNotifier{}
	engine := newTestEngine(t, nil, WithNotifier(notifier))

	records := []Record{
		textRecord("a", 0, "weekly standup notes"),
		textRecord("b", 5*time.Minute, "weekly standup notes"),
		textRecord("c", 10*time.Minute, "weekly standup notes"),
		textRecord("d", 60*24*time.Hour+7*time.Hour, "vacation photo beach"),
	}

	clusters, err := engine.FindClusters(context.Background(), records)
	if err != nil {
		t.Fatalf("FindClusters() error = %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}

	c := clusters[0]
	if c.Center.ID != "a" {
		t.Errorf("Expected center a, got %s", c.Center.ID)
	}
	if got := c.Members(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Members() = %v, want [a b c]", got)
	}
	if c.ClusterType != ClusterSemantic {
		t.Errorf("Expected semantic cluster, got %s", c.ClusterType)
	}
	if c.TemporalSpan != 10*time.Minute {
		t.Errorf("Expected span of 10m, got %v", c.TemporalSpan)
	}
	if c.AverageSimilarity < 0.6 || c.AverageSimilarity > 1 {
		t.Errorf("Expected average similarity in [0.6, 1], got %v", c.AverageSimilarity)
	}
	if c.ID != clusterID("a") {
		t.Errorf("Expected ID derived from center, got %s", c.ID)
	}

	state := engine.State()
	if len(state.ContentRelationships) != 1 || !state.LastClusteredAt.Equal(testBase) {
		t.Errorf("Expected clusters to be published, got %+v", state)
	}

	types := notifier.types()
	if len(types) == 0 || types[len(types)-1] != EventClustersUpdated {
		t.Errorf("Expected clusters_updated as last event, got %v", types)
	}
}

func TestEngine_FindClusters_Partition(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	topics := []string{"grocery list milk eggs", "flight boarding pass", "error stack trace", "recipe pasta sauce"}

	var records []Record
	for i := 0; i < 48; i++ {
		offset := time.Duration(i%4)*9*24*time.Hour + time.Duration(i)*time.Minute
		records = append(records, textRecord(fmt.Sprintf("r%02d", i), offset, topics[i%len(topics)]))
	}

	clusters, err := engine.FindClusters(context.Background(), records)
	if err != nil {
		t.Fatalf("FindClusters() error = %v", err)
	}
	if len(clusters) == 0 {
		t.Fatal("Expected at least one cluster")
	}

	seen := make(map[string]string)
	for _, c := range clusters {
		if len(c.Related) == 0 {
			t.Errorf("Cluster %s has no related records", c.ID)
		}
		for _, id := range c.Members() {
			if prev, dup := seen[id]; dup {
				t.Errorf("Record %s is in clusters %s and %s", id, prev, c.ID)
			}
			seen[id] = c.ID
		}
		for _, item := range c.Related {
			if item.SimilarityScore < engine.Settings().MinimumSimilarityScore {
				t.Errorf("Record %s joined below threshold: %v", item.Record.ID, item.SimilarityScore)
			}
		}
	}
}

func TestEngine_FindClusters_Idempotent(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	var records []Record
	for i := 0; i < 20; i++ {
		records = append(records, textRecord(fmt.Sprintf("r%02d", i), time.Duration(i)*time.Hour, fmt.Sprintf("tutorial step %d", i%3)))
	}

	first, err := engine.FindClusters(context.Background(), records)
	if err != nil {
		t.Fatalf("first run error = %v", err)
	}
	second, err := engine.FindClusters(context.Background(), records)
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Expected same cluster count, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Cluster %d ID changed: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if !reflect.DeepEqual(first[i].Members(), second[i].Members()) {
			t.Errorf("Cluster %d members changed: %v vs %v", i, first[i].Members(), second[i].Members())
		}
	}
}

func TestEngine_FindClusters_DuplicateIDs(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	a := textRecord("a", 0, "shared text")
	records := []Record{a, a, textRecord("b", time.Minute, "shared text"), a}

	clusters, err := engine.FindClusters(context.Background(), records)
	if err != nil {
		t.Fatalf("FindClusters() error = %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if got := clusters[0].Members(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Members() = %v, want [a b]", got)
	}
}

func TestEngine_FindClusters_Unrelated(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	records := []Record{
		textRecord("a", 0, "alpha"),
		textRecord("b", 45*24*time.Hour, "beta"),
		textRecord("c", 90*24*time.Hour, "gamma"),
	}

	clusters, err := engine.FindClusters(context.Background(), records)
	if err != nil {
		t.Fatalf("FindClusters() error = %v", err)
	}
	if clusters == nil || len(clusters) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", clusters)
	}
}

func TestEngine_FindClusters_Disabled(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	settings.EnableContentDiscovery = false
	engine := newTestEngine(t, settings)

	clusters, err := engine.FindClusters(context.Background(), []Record{
		textRecord("a", 0, "same"),
		textRecord("b", 0, "same"),
	})
	if err != nil {
		t.Fatalf("Expected no error when disabled, got %v", err)
	}
	if len(clusters) != 0 {
		t.Errorf("Expected no clusters when disabled, got %d", len(clusters))
	}
}

func TestEngine_FindClusters_Cancelled(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.FindClusters(ctx, []Record{
		textRecord("a", 0, "same"),
		textRecord("b", 0, "same"),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if state := engine.State(); len(state.ContentRelationships) != 0 || !state.LastClusteredAt.IsZero() {
		t.Errorf("Expected no published clusters after cancellation, got %+v", state)
	}
}

func TestEngine_FindClusters_CancelledBetweenCenters(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// once armed, the clock cancels the pass when the second center starts
	var armed atomic.Bool
	var ticks, armedCalls atomic.Int64
	clock := func() time.Time {
		if armed.Load() && armedCalls.Add(1) == 2 {
			cancel()
		}
		return testBase.Add(time.Duration(ticks.Add(1)) * time.Minute)
	}

	notifier := &mockNotifier{}
	engine := newTestEngine(t, nil, WithClock(clock), WithNotifier(notifier))

	first, err := engine.FindClusters(context.Background(), []Record{
		textRecord("a", 0, "invoice payment due"),
		textRecord("b", 0, "invoice payment due"),
		textRecord("c", 0, "beach holiday photo"),
		textRecord("d", 0, "beach holiday photo"),
	})
	if err != nil {
		t.Fatalf("first FindClusters() error = %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("Expected 2 clusters from the first pass, got %d", len(first))
	}
	before := engine.State()
	profileBefore := engine.Profile()
	updatesBefore := countEvents(notifier, EventClustersUpdated)

	armed.Store(true)
	clusters, err := engine.FindClusters(ctx, []Record{
		textRecord("e", 0, "standup meeting notes"),
		textRecord("f", 0, "standup meeting notes"),
		textRecord("g", 0, "flight booking confirmation"),
		textRecord("h", 0, "flight booking confirmation"),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if clusters != nil {
		t.Errorf("Expected no partial clusters, got %d", len(clusters))
	}
	if got := armedCalls.Load(); got < 2 {
		t.Fatalf("pass stopped before the second center (clock read %d times)", got)
	}

	after := engine.State()
	if !reflect.DeepEqual(clusterIDs(after.ContentRelationships), clusterIDs(before.ContentRelationships)) {
		t.Errorf("published clusters changed: %v -> %v",
			clusterIDs(before.ContentRelationships), clusterIDs(after.ContentRelationships))
	}
	if !after.LastClusteredAt.Equal(before.LastClusteredAt) {
		t.Errorf("LastClusteredAt changed: %v -> %v", before.LastClusteredAt, after.LastClusteredAt)
	}
	if after.IsAnalyzing || after.ActiveAnalyses != 0 {
		t.Errorf("Expected no analysis in flight after cancellation, got %+v", after)
	}
	if !reflect.DeepEqual(engine.Profile(), profileBefore) {
		t.Errorf("profile changed by a cancelled pass")
	}
	if got := countEvents(notifier, EventClustersUpdated); got != updatesBefore {
		t.Errorf("clusters_updated events = %d, want %d", got, updatesBefore)
	}
	if countEvents(notifier, EventAnalysisFailed) != 1 {
		t.Errorf("Expected one analysis_failed event, got %v", notifier.types())
	}
}

func clusterIDs(clusters []ContentCluster) []string {
	ids := make([]string, len(clusters))
	for i := range clusters {
		ids[i] = clusters[i].ID
	}
	return ids
}

func countEvents(n *mockNotifier, kind EventType) int {
	count := 0
	for _, typ := range n.types() {
		if typ == kind {
			count++
		}
	}
	return count
}

func TestDominantClusterType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *RecommendationResult
		want   ClusterType
	}{
		{"empty", &RecommendationResult{}, ClusterMixed},
		{
			name:   "temporal wins",
			result: &RecommendationResult{TemporalPatterns: make([]TemporalMatch, 1)},
			want:   ClusterTemporal,
		},
		{
			name: "semantic beats visual",
			result: &RecommendationResult{
				SemanticMatches: make([]SemanticMatch, 3),
				VisualMatches:   make([]VisualMatch, 2),
			},
			want: ClusterSemantic,
		},
		{
			name: "tie is mixed",
			result: &RecommendationResult{
				VisualMatches:   make([]VisualMatch, 2),
				WorkflowMatches: make([]WorkflowMatch, 2),
			},
			want: ClusterMixed,
		},
		{
			name: "workflow alone",
			result: &RecommendationResult{
				RelatedContent:  make([]RelatedItem, 5),
				WorkflowMatches: make([]WorkflowMatch, 1),
			},
			want: ClusterWorkflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := dominantClusterType(tt.result); got != tt.want {
				t.Errorf("dominantClusterType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClusterID_Stable(t *testing.T) {
	t.Parallel()

	if clusterID("abc") != clusterID("abc") {
		t.Error("Expected identical IDs for the same center")
	}
	if clusterID("abc") == clusterID("abd") {
		t.Error("Expected distinct IDs for distinct centers")
	}
}
