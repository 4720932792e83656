// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// TestRecordAnalysis tests recommendation cycle metric recording
func TestRecordAnalysis(t *testing.T) {
	beforeComparisons := testutil.ToFloat64(AnalysisComparisons)
	beforeRelated := testutil.ToFloat64(AnalysisMatches.WithLabelValues("related"))
	beforeWorkflow := testutil.ToFloat64(AnalysisMatches.WithLabelValues("workflow"))

	RecordAnalysis(3*time.Millisecond, 50, MatchCounts{Related: 4, Temporal: 1, Workflow: 1}, 0.35)

	if got := testutil.ToFloat64(AnalysisComparisons) - beforeComparisons; got != 50 {
		t.Errorf("Expected 50 comparisons, got %v", got)
	}
	if got := testutil.ToFloat64(AnalysisMatches.WithLabelValues("related")) - beforeRelated; got != 4 {
		t.Errorf("Expected 4 related matches, got %v", got)
	}
	if got := testutil.ToFloat64(AnalysisMatches.WithLabelValues("workflow")) - beforeWorkflow; got != 1 {
		t.Errorf("Expected 1 workflow match, got %v", got)
	}
}

// TestRecordAnalysisOutcome tests that non-success outcomes land in their own series
func TestRecordAnalysisOutcome(t *testing.T) {
	before := histogramCount(t, "cancelled")
	RecordAnalysisOutcome("cancelled", time.Millisecond)
	if got := histogramCount(t, "cancelled") - before; got != 1 {
		t.Errorf("Expected 1 cancelled observation, got %d", got)
	}
}

// TestTrackAnalysis tests in-flight gauge balance
func TestTrackAnalysis(t *testing.T) {
	before := testutil.ToFloat64(AnalysesInFlight)
	TrackAnalysis(true)
	TrackAnalysis(true)
	TrackAnalysis(false)

	if got := testutil.ToFloat64(AnalysesInFlight) - before; got != 1 {
		t.Errorf("Expected in-flight delta 1, got %v", got)
	}
	TrackAnalysis(false)
}

// TestRecordClusterRun tests cluster gauges and error counting
func TestRecordClusterRun(t *testing.T) {
	tests := []struct {
		name         string
		clusters     int
		records      int
		err          error
		wantClusters float64
	}{
		{name: "successful run", clusters: 3, records: 11, wantClusters: 3},
		{name: "failed run keeps previous gauges", clusters: 9, records: 99, err: errors.New("context canceled"), wantClusters: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beforeErrors := testutil.ToFloat64(ClusterRunErrors)
			RecordClusterRun(time.Second, tt.clusters, tt.records, tt.err)

			if got := testutil.ToFloat64(ClusterCount); got != tt.wantClusters {
				t.Errorf("Expected cluster gauge %v, got %v", tt.wantClusters, got)
			}
			wantErrDelta := 0.0
			if tt.err != nil {
				wantErrDelta = 1
			}
			if got := testutil.ToFloat64(ClusterRunErrors) - beforeErrors; got != wantErrDelta {
				t.Errorf("Expected error delta %v, got %v", wantErrDelta, got)
			}
		})
	}
}

// TestRecordScoreCache tests cache counters
func TestRecordScoreCache(t *testing.T) {
	beforeHits := testutil.ToFloat64(ScoreCacheHits)
	beforeMisses := testutil.ToFloat64(ScoreCacheMisses)

	RecordScoreCache(7, 3)

	if got := testutil.ToFloat64(ScoreCacheHits) - beforeHits; got != 7 {
		t.Errorf("Expected 7 hits, got %v", got)
	}
	if got := testutil.ToFloat64(ScoreCacheMisses) - beforeMisses; got != 3 {
		t.Errorf("Expected 3 misses, got %v", got)
	}
}

// TestProviderMetrics tests fallback counters and breaker gauge
func TestProviderMetrics(t *testing.T) {
	before := testutil.ToFloat64(ProviderFallbacks.WithLabelValues("circuit_open"))
	RecordProviderFallback("circuit_open")
	if got := testutil.ToFloat64(ProviderFallbacks.WithLabelValues("circuit_open")) - before; got != 1 {
		t.Errorf("Expected 1 fallback, got %v", got)
	}

	SetBreakerState("records", 2)
	if got := testutil.ToFloat64(ProviderBreakerState.WithLabelValues("records")); got != 2 {
		t.Errorf("Expected breaker state 2, got %v", got)
	}
}

// TestRecordStoreOperation tests store metrics
func TestRecordStoreOperation(t *testing.T) {
	before := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("get"))
	RecordStoreOperation("get", time.Millisecond, nil)
	RecordStoreOperation("get", time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("get")) - before; got != 1 {
		t.Errorf("Expected 1 store error, got %v", got)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/clusters", "200"))
	RecordAPIRequest("GET", "/api/v1/clusters", "200", 12*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/clusters", "200")) - before; got != 1 {
		t.Errorf("Expected 1 request, got %v", got)
	}
}

// TestRecordEventPublished tests event counters
func TestRecordEventPublished(t *testing.T) {
	beforeOK := testutil.ToFloat64(EventsPublished.WithLabelValues("clusters_updated"))
	beforeErr := testutil.ToFloat64(EventPublishErrors)

	RecordEventPublished("CLUSTERS_UPDATED", nil)
	RecordEventPublished("clusters_updated", errors.New("closed"))

	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("clusters_updated")) - beforeOK; got != 1 {
		t.Errorf("Expected 1 published event, got %v", got)
	}
	if got := testutil.ToFloat64(EventPublishErrors) - beforeErr; got != 1 {
		t.Errorf("Expected 1 publish error, got %v", got)
	}
}

// TestRecordBackup tests backup outcome recording
func TestRecordBackup(t *testing.T) {
	beforeOK := testutil.ToFloat64(BackupsTotal.WithLabelValues("manual", "completed"))
	beforeErr := testutil.ToFloat64(BackupsTotal.WithLabelValues("manual", "failed"))

	RecordBackup("manual", 4096, nil)
	RecordBackup("manual", 9999, errors.New("disk full"))

	if got := testutil.ToFloat64(BackupsTotal.WithLabelValues("manual", "completed")) - beforeOK; got != 1 {
		t.Errorf("Expected 1 completed backup, got %v", got)
	}
	if got := testutil.ToFloat64(BackupsTotal.WithLabelValues("manual", "failed")) - beforeErr; got != 1 {
		t.Errorf("Expected 1 failed backup, got %v", got)
	}
	if got := testutil.ToFloat64(BackupSizeBytes); got != 4096 {
		t.Errorf("Expected last size 4096, got %v", got)
	}
}

func histogramCount(t *testing.T, outcome string) uint64 {
	t.Helper()

	observer, err := AnalysisDuration.GetMetricWithLabelValues(outcome)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}

	m := &dto.Metric{}
	if err := observer.(interface{ Write(*dto.Metric) error }).Write(m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
