// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Discovery analysis cycles and clustering runs
// - Pairwise score cache efficiency
// - Record provider fallbacks and circuit breaker state
// - API endpoint latency and throughput
// - WebSocket connections and event fan-out

var (
	// Discovery Metrics
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_analysis_duration_seconds",
			Help:    "Duration of recommendation cycles in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"outcome"}, // "success", "cancelled", "disabled"
	)

	AnalysisComparisons = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_comparisons_total",
			Help: "Total number of candidate comparisons performed by matchers",
		},
	)

	AnalysisMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_matches_total",
			Help: "Total number of matches produced, by signal",
		},
		[]string{"signal"}, // "related", "temporal", "semantic", "visual", "workflow"
	)

	AnalysisConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_confidence",
			Help:    "Aggregate confidence of recommendation results",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	AnalysesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discovery_analyses_in_flight",
			Help: "Number of recommendation or clustering runs currently executing",
		},
	)

	ClusterRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_cluster_run_duration_seconds",
			Help:    "Duration of corpus clustering runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ClusterCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discovery_clusters",
			Help: "Number of clusters produced by the last clustering run",
		},
	)

	ClusteredRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discovery_clustered_records",
			Help: "Number of records assigned to a cluster by the last clustering run",
		},
	)

	ClusterRunErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_cluster_run_errors_total",
			Help: "Total number of clustering runs that did not complete",
		},
	)

	// Score Cache Metrics
	ScoreCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_score_cache_hits_total",
			Help: "Total number of pairwise score cache hits",
		},
	)

	ScoreCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_score_cache_misses_total",
			Help: "Total number of pairwise score cache misses",
		},
	)

	// Record Provider Metrics
	ProviderFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_fallbacks_total",
			Help: "Total number of record fetches answered with an empty pool",
		},
		[]string{"reason"}, // "error", "circuit_open"
	)

	ProviderBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "provider_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of record store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of record store errors",
		},
		[]string{"operation"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of discovery events published",
		},
		[]string{"type"},
	)

	EventPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_publish_errors_total",
			Help: "Total number of discovery events that failed to publish",
		},
	)

	// Backup Metrics
	BackupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backups_total",
			Help: "Total number of store backups by trigger and outcome",
		},
		[]string{"trigger", "status"},
	)

	BackupSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backup_last_size_bytes",
			Help: "Size of the most recent successful backup",
		},
	)

	BackupsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "backups_pruned_total",
			Help: "Total number of backups removed by the retention policy",
		},
	)
)

// MatchCounts carries per-signal match counts of one recommendation cycle.
type MatchCounts struct {
	Related  int
	Temporal int
	Semantic int
	Visual   int
	Workflow int
}

// RecordAnalysis records a completed recommendation cycle.
func RecordAnalysis(duration time.Duration, comparisons int, matches MatchCounts, confidence float64) {
	AnalysisDuration.WithLabelValues("success").Observe(duration.Seconds())
	AnalysisComparisons.Add(float64(comparisons))
	AnalysisConfidence.Observe(confidence)

	AnalysisMatches.WithLabelValues("related").Add(float64(matches.Related))
	AnalysisMatches.WithLabelValues("temporal").Add(float64(matches.Temporal))
	AnalysisMatches.WithLabelValues("semantic").Add(float64(matches.Semantic))
	AnalysisMatches.WithLabelValues("visual").Add(float64(matches.Visual))
	AnalysisMatches.WithLabelValues("workflow").Add(float64(matches.Workflow))
}

// RecordAnalysisOutcome records a cycle that produced no result.
func RecordAnalysisOutcome(outcome string, duration time.Duration) {
	AnalysisDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// TrackAnalysis tracks in-flight analyses
func TrackAnalysis(inc bool) {
	if inc {
		AnalysesInFlight.Inc()
	} else {
		AnalysesInFlight.Dec()
	}
}

// RecordClusterRun records a clustering run.
func RecordClusterRun(duration time.Duration, clusters, records int, err error) {
	ClusterRunDuration.Observe(duration.Seconds())
	if err != nil {
		ClusterRunErrors.Inc()
		return
	}
	ClusterCount.Set(float64(clusters))
	ClusteredRecords.Set(float64(records))
}

// RecordScoreCache records score cache lookups of one cycle.
func RecordScoreCache(hits, misses int64) {
	ScoreCacheHits.Add(float64(hits))
	ScoreCacheMisses.Add(float64(misses))
}

// RecordProviderFallback records a fetch that degraded to an empty pool.
func RecordProviderFallback(reason string) {
	ProviderFallbacks.WithLabelValues(reason).Inc()
}

// SetBreakerState records the circuit breaker state by name.
func SetBreakerState(name string, state int) {
	ProviderBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordStoreOperation records a store operation metric
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordEventPublished records a published event, or a failure when err is set.
func RecordEventPublished(eventType string, err error) {
	if err != nil {
		EventPublishErrors.Inc()
		return
	}
	EventsPublished.WithLabelValues(strings.ToLower(eventType)).Inc()
}

// RecordBackup records a backup attempt. size is ignored on failure.
func RecordBackup(trigger string, size int64, err error) {
	if err != nil {
		BackupsTotal.WithLabelValues(trigger, "failed").Inc()
		return
	}
	BackupsTotal.WithLabelValues(trigger, "completed").Inc()
	BackupSizeBytes.Set(float64(size))
}
