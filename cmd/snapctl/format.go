// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/snapgraph/internal/backup"
	"github.com/tomtom215/snapgraph/internal/discovery"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

func parseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatJSON, FormatHuman:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ImportOutput:
		return fmt.Sprintf("Imported %d records from %s in %d batches (%d in store)",
			v.Imported, v.File, v.Batches, v.Total), nil
	case *discovery.RecommendationResult:
		return formatRecommendationsHuman(v), nil
	case *ClustersOutput:
		return formatClustersHuman(v), nil
	case *backup.Backup:
		return fmt.Sprintf("Created backup %s (%d records, %d bytes)\n  %s",
			v.ID, v.RecordCount, v.FileSize, v.FilePath), nil
	case *backup.RestoreResult:
		return formatRestoreHuman(v), nil
	case *BackupListOutput:
		return formatBackupsHuman(v), nil
	default:
		// unknown types fall back to JSON
		return formatJSON(resp)
	}
}

func formatRecommendationsHuman(r *discovery.RecommendationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recommendations for %s (confidence %.2f)\n", r.Source.ID, r.Confidence)
	b.WriteString(strings.Repeat("=", 60) + "\n")

	if len(r.RelatedContent) == 0 {
		b.WriteString("No related records.\n")
	}
	for i, item := range r.RelatedContent {
		fmt.Fprintf(&b, "%2d. %-24s %.3f  %s\n", i+1, item.Record.ID, item.SimilarityScore, item.RelationshipType)
		if item.Explanation != "" {
			fmt.Fprintf(&b, "    %s\n", item.Explanation)
		}
	}

	fmt.Fprintf(&b, "\nTemporal patterns: %d  Semantic: %d  Visual: %d  Workflows: %d\n",
		len(r.TemporalPatterns), len(r.SemanticMatches), len(r.VisualMatches), len(r.WorkflowMatches))
	fmt.Fprintf(&b, "Comparisons: %d  Analysis time: %s", r.Metrics.Comparisons, r.Metrics.AnalysisTime)
	return b.String()
}

func formatClustersHuman(c *ClustersOutput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d clusters over %d records\n", c.Count, c.Records)
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for _, cluster := range c.Clusters {
		fmt.Fprintf(&b, "%s  %-9s avg %.3f  span %s\n",
			cluster.ID, cluster.ClusterType, cluster.AverageSimilarity, cluster.TemporalSpan)
		fmt.Fprintf(&b, "    %s\n", strings.Join(cluster.Members(), ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRestoreHuman(r *backup.RestoreResult) string {
	if !r.Restored {
		return fmt.Sprintf("Backup %s verified", r.BackupID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Restored backup %s: %d records (was %d)", r.BackupID, r.RecordsAfter, r.RecordsBefore)
	if r.PreRestoreBackup != "" {
		fmt.Fprintf(&b, "\nSafety backup: %s", r.PreRestoreBackup)
	}
	return b.String()
}

func formatBackupsHuman(l *BackupListOutput) string {
	var b strings.Builder

	switch {
	case l.DryRun:
		fmt.Fprintf(&b, "%d backups would be deleted from %s\n", l.Count, l.Dir)
	case l.Pruned:
		fmt.Fprintf(&b, "Deleted %d backups from %s\n", l.Count, l.Dir)
	default:
		fmt.Fprintf(&b, "%d backups in %s\n", l.Count, l.Dir)
	}
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for _, bk := range l.Backups {
		fmt.Fprintf(&b, "%s  %s  %-11s %6d records  %d bytes\n",
			bk.ID, bk.CreatedAt.Format("2006-01-02 15:04:05"), bk.Trigger, bk.RecordCount, bk.FileSize)
	}
	return strings.TrimRight(b.String(), "\n")
}
