// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"time"
)

// Record is a single content item supplied by the record provider.
// The engine never mutates records.
type Record struct {
	// ID uniquely identifies the record within a library.
	ID string `json:"id" validate:"record_id"`

	// Timestamp is when the content was captured.
	Timestamp time.Time `json:"timestamp" validate:"required"`

	// ExtractedText is the OCR output, if any.
	ExtractedText string `json:"extracted_text,omitempty" validate:"max=65536"`

	// Tags is treated as a set. Duplicates and case are ignored during scoring.
	Tags []string `json:"tags,omitempty" validate:"max=256,dive,max=128"`

	// Visual holds precomputed visual attributes, nil when unavailable.
	Visual *VisualAttributes `json:"visual,omitempty"`
}

// HasText reports whether the record carries non-empty extracted text.
//
//nolint:gocritic // hugeParam: Record passed by value for immutability
func (r Record) HasText() bool {
	return len(Tokenize(r.ExtractedText)) > 0
}

// HasTags reports whether the record carries at least one tag.
//
//nolint:gocritic // hugeParam: Record passed by value for immutability
func (r Record) HasTags() bool {
	return len(r.Tags) > 0
}

// VisualAttributes are computed upstream by the image analysis pipeline.
type VisualAttributes struct {
	// IsDocument is true when the capture looks like a document or text page.
	IsDocument bool `json:"is_document"`

	// ProminentObjectCount is the number of salient objects detected.
	ProminentObjectCount int `json:"prominent_object_count" validate:"gte=0"`
}

// RecordProvider supplies records to callers of the engine.
// This is typically implemented by the storage layer.
type RecordProvider interface {
	// GetRecord returns a single record by ID.
	GetRecord(ctx context.Context, id string) (Record, error)

	// ListRecords returns the full corpus in a stable order.
	ListRecords(ctx context.Context) ([]Record, error)
}

// RelationshipType labels why two records are related.
type RelationshipType string

const (
	// RelationshipTemporal marks records captured close together in time.
	RelationshipTemporal RelationshipType = "temporal"
	// RelationshipSemantic marks records with strongly overlapping text.
	RelationshipSemantic RelationshipType = "semantic"
	// RelationshipVisual marks records that look alike.
	RelationshipVisual RelationshipType = "visual"
	// RelationshipWorkflow marks records that belong to one multi-step task.
	RelationshipWorkflow RelationshipType = "workflow"
	// RelationshipContextual is the catch-all for related records.
	RelationshipContextual RelationshipType = "contextual"
	// RelationshipThematic marks records sharing a broader theme.
	RelationshipThematic RelationshipType = "thematic"
	// RelationshipDuplicate marks near-identical captures.
	RelationshipDuplicate RelationshipType = "duplicate"
	// RelationshipVariation marks small edits of the same content.
	RelationshipVariation RelationshipType = "variation"
)

// AllRelationshipTypes lists every relationship type in declaration order.
func AllRelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelationshipTemporal,
		RelationshipSemantic,
		RelationshipVisual,
		RelationshipWorkflow,
		RelationshipContextual,
		RelationshipThematic,
		RelationshipDuplicate,
		RelationshipVariation,
	}
}

// TemporalPattern is the recurrence label of a temporal match.
type TemporalPattern string

const (
	PatternDaily     TemporalPattern = "daily"
	PatternWeekly    TemporalPattern = "weekly"
	PatternMonthly   TemporalPattern = "monthly"
	PatternWorkHours TemporalPattern = "work_hours"
	PatternWeekend   TemporalPattern = "weekend"
)

// AllTemporalPatterns lists every temporal pattern in declaration order.
func AllTemporalPatterns() []TemporalPattern {
	return []TemporalPattern{PatternDaily, PatternWeekly, PatternMonthly, PatternWorkHours, PatternWeekend}
}

// MatchingFeature describes one shared characteristic of a related pair.
type MatchingFeature struct {
	FeatureType string  `json:"feature_type"`
	Similarity  float64 `json:"similarity"`
	Description string  `json:"description"`
}

// RelatedItem is a candidate record ranked against a source.
type RelatedItem struct {
	Record           Record            `json:"record"`
	SimilarityScore  float64           `json:"similarity_score"`
	RelationshipType RelationshipType  `json:"relationship_type"`
	MatchingFeatures []MatchingFeature `json:"matching_features"`

	// TemporalProximity is the absolute capture time distance in seconds.
	TemporalProximity *float64 `json:"temporal_proximity,omitempty"`

	Explanation string `json:"explanation"`
}

// TemporalMatch reports a recurring capture time.
type TemporalMatch struct {
	Pattern       TemporalPattern `json:"pattern"`
	HourOfDay     int             `json:"hour_of_day"`
	Records       []Record        `json:"records"`
	Confidence    float64         `json:"confidence"`
	PredictedNext time.Time       `json:"predicted_next"`
}

// SemanticMatch reports a candidate with overlapping text or entities.
type SemanticMatch struct {
	Record         Record   `json:"record"`
	Similarity     float64  `json:"similarity"`
	SharedEntities []string `json:"shared_entities"`
}

// VisualMatch reports a candidate that looks similar to the source.
type VisualMatch struct {
	Record           Record  `json:"record"`
	ColorSimilarity  float64 `json:"color_similarity"`
	LayoutSimilarity float64 `json:"layout_similarity"`
	Similarity       float64 `json:"similarity"`
}

// WorkflowMatch reports a multi-step workflow the source participates in.
type WorkflowMatch struct {
	WorkflowType string   `json:"workflow_type"`
	Keyword      string   `json:"keyword"`
	Records      []Record `json:"records"`
	StepPosition int      `json:"step_position"`
	Confidence   float64  `json:"confidence"`
	NextSteps    []string `json:"next_steps"`
}

// ProcessingMetrics captures cost figures for one recommendation cycle.
type ProcessingMetrics struct {
	AnalysisTime time.Duration `json:"analysis_time"`
	Comparisons  int           `json:"comparisons"`
	CacheHitRate float64       `json:"cache_hit_rate"`

	// MemoryUsage is an estimate of record size times pool size, not a measurement.
	MemoryUsage int64 `json:"memory_usage"`
}

// RecommendationResult is the merged output of one recommendation cycle.
type RecommendationResult struct {
	Source           Record            `json:"source"`
	RelatedContent   []RelatedItem     `json:"related_content"`
	TemporalPatterns []TemporalMatch   `json:"temporal_patterns"`
	SemanticMatches  []SemanticMatch   `json:"semantic_matches"`
	VisualMatches    []VisualMatch     `json:"visual_matches"`
	WorkflowMatches  []WorkflowMatch   `json:"workflow_matches"`
	Confidence       float64           `json:"confidence"`
	Timestamp        time.Time         `json:"timestamp"`
	Metrics          ProcessingMetrics `json:"metrics"`
}

// ClusterType is the dominant match category of a cluster.
type ClusterType string

const (
	ClusterTemporal ClusterType = "temporal"
	ClusterSemantic ClusterType = "semantic"
	ClusterVisual   ClusterType = "visual"
	ClusterWorkflow ClusterType = "workflow"
	ClusterMixed    ClusterType = "mixed"
)

// ContentCluster is a group of records anchored at a center record.
type ContentCluster struct {
	ID                string        `json:"id"`
	Center            Record        `json:"center"`
	Related           []RelatedItem `json:"related"`
	ClusterType       ClusterType   `json:"cluster_type"`
	AverageSimilarity float64       `json:"average_similarity"`
	TemporalSpan      time.Duration `json:"temporal_span"`
}

// Members returns the IDs of the center and all related records.
//
//nolint:gocritic // hugeParam: value receiver keeps clusters immutable
func (c ContentCluster) Members() []string {
	ids := make([]string, 0, len(c.Related)+1)
	ids = append(ids, c.Center.ID)
	for i := range c.Related {
		ids = append(ids, c.Related[i].Record.ID)
	}
	return ids
}
