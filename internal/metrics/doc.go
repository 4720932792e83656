// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - Recommendation cycle latency, comparisons, matches and confidence
  - Clustering run duration and result sizes
  - Pairwise score cache hit/miss rates
  - Record provider fallbacks and circuit breaker state
  - Record store operations
  - HTTP request latency and throughput
  - WebSocket connections and published events

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8470/metrics

# Usage

All collectors are registered with the default registry through promauto at
package init. Callers use the Record* helpers:

	start := time.Now()
	result, err := engine.GenerateRecommendations(ctx, source, pool, 20)
	metrics.RecordAnalysis(time.Since(start), result.Metrics.Comparisons, counts, result.Confidence)

# Example Queries

	# p95 recommendation latency
	histogram_quantile(0.95, rate(discovery_analysis_duration_seconds_bucket[5m]))

	# score cache hit rate
	rate(discovery_score_cache_hits_total[5m]) /
	  (rate(discovery_score_cache_hits_total[5m]) + rate(discovery_score_cache_misses_total[5m]))

	# provider degradation
	sum by (reason) (rate(provider_fallbacks_total[5m]))
*/
package metrics
