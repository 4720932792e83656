// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/snapgraph/internal/metrics"
)

// clusterMaxResults is the related content cap used when growing a cluster.
const clusterMaxResults = 50

// FindClusters partitions records into clusters of related content.
//
// Records are visited in input order. Each unclustered record becomes a
// center and is compared against the records not yet clustered; related
// items at or above the minimum similarity join its cluster. A record is
// never placed in two clusters, and records that relate to nothing are left
// out. The pass is greedy and single-threaded, so identical input yields
// identical clusters.
//
// On cancellation the error is returned and the published clusters are left
// untouched.
func (e *Engine) FindClusters(ctx context.Context, records []Record) ([]ContentCluster, error) {
	if !e.settings.EnableContentDiscovery {
		return []ContentCluster{}, nil
	}

	start := time.Now()
	e.beginAnalysis()
	defer e.endAnalysis()

	clusters, err := e.findClusters(ctx, records)
	if err != nil {
		metrics.RecordClusterRun(time.Since(start), 0, 0, err)
		e.notify(context.WithoutCancel(ctx), Event{
			Type:      EventAnalysisFailed,
			Records:   len(records),
			Error:     err.Error(),
			Timestamp: e.now(),
		})
		return nil, fmt.Errorf("find clusters: %w", err)
	}

	clustered := 0
	for i := range clusters {
		clustered += len(clusters[i].Related) + 1
	}

	now := e.now()
	e.state.publishClusters(clusters, now)
	metrics.RecordClusterRun(time.Since(start), len(clusters), clustered, nil)

	e.logger.Info().
		Int("records", len(records)).
		Int("clusters", len(clusters)).
		Int("clustered", clustered).
		Dur("duration", time.Since(start)).
		Msg("clustering complete")

	e.notify(ctx, Event{
		Type:      EventClustersUpdated,
		Clusters:  len(clusters),
		Records:   clustered,
		Timestamp: now,
	})

	return clusters, nil
}

// findClusters is the greedy pass. processed is owned by this call only.
func (e *Engine) findClusters(ctx context.Context, records []Record) ([]ContentCluster, error) {
	records = dedupeByID(records)
	processed := make(map[string]struct{}, len(records))
	clusters := make([]ContentCluster, 0)

	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		center := records[i]
		if _, done := processed[center.ID]; done {
			continue
		}

		pool := unprocessed(records, processed, center.ID)
		if len(pool) == 0 {
			break
		}

		result, err := e.generate(ctx, center, pool, clusterMaxResults)
		if err != nil {
			return nil, err
		}

		related := make([]RelatedItem, 0, len(result.RelatedContent))
		for _, item := range result.RelatedContent {
			if item.SimilarityScore >= e.settings.MinimumSimilarityScore {
				related = append(related, item)
			}
		}
		if len(related) == 0 {
			continue
		}

		processed[center.ID] = struct{}{}
		for _, item := range related {
			processed[item.Record.ID] = struct{}{}
		}

		clusters = append(clusters, newCluster(center, related, result))
	}

	return clusters, nil
}

// newCluster assembles a cluster from its center, members and the
// recommendation result that produced them.
//
//nolint:gocritic // hugeParam: center passed by value for immutability
func newCluster(center Record, related []RelatedItem, result *RecommendationResult) ContentCluster {
	var total float64
	earliest, latest := center.Timestamp, center.Timestamp

	for _, item := range related {
		total += item.SimilarityScore
		if item.Record.Timestamp.Before(earliest) {
			earliest = item.Record.Timestamp
		}
		if item.Record.Timestamp.After(latest) {
			latest = item.Record.Timestamp
		}
	}

	return ContentCluster{
		ID:                clusterID(center.ID),
		Center:            center,
		Related:           related,
		ClusterType:       dominantClusterType(result),
		AverageSimilarity: total / float64(len(related)),
		TemporalSpan:      latest.Sub(earliest),
	}
}

// dominantClusterType picks the match category with the most matches.
// Ties and empty results are mixed.
func dominantClusterType(r *RecommendationResult) ClusterType {
	counts := []struct {
		kind  ClusterType
		count int
	}{
		{ClusterTemporal, len(r.TemporalPatterns)},
		{ClusterSemantic, len(r.SemanticMatches)},
		{ClusterVisual, len(r.VisualMatches)},
		{ClusterWorkflow, len(r.WorkflowMatches)},
	}

	best, bestCount, tied := ClusterMixed, 0, false
	for _, c := range counts {
		switch {
		case c.count > bestCount:
			best, bestCount, tied = c.kind, c.count, false
		case c.count == bestCount && c.count > 0:
			tied = true
		}
	}

	if bestCount == 0 || tied {
		return ClusterMixed
	}
	return best
}

// clusterID derives a stable ID from the center record, so repeated runs
// over the same corpus produce the same IDs.
func clusterID(centerID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("snapgraph:cluster:"+centerID)).String()
}

// unprocessed returns records not yet clustered, excluding the center.
func unprocessed(records []Record, processed map[string]struct{}, centerID string) []Record {
	pool := make([]Record, 0, len(records))
	for i := range records {
		id := records[i].ID
		if id == centerID {
			continue
		}
		if _, done := processed[id]; done {
			continue
		}
		pool = append(pool, records[i])
	}
	return pool
}

// dedupeByID keeps the first record for each ID.
func dedupeByID(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for i := range records {
		if _, dup := seen[records[i].ID]; dup {
			continue
		}
		seen[records[i].ID] = struct{}{}
		out = append(out, records[i])
	}
	return out
}
