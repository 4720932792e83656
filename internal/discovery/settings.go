// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"fmt"
	"math"

	"github.com/tomtom215/snapgraph/internal/validation"
)

// Settings configures one engine instance. It is fixed for the lifetime of
// the engine; build a new engine to change it.
type Settings struct {
	// EnableContentDiscovery turns the whole engine on or off.
	// When false every call returns an empty, zero-confidence result.
	// Default: true
	EnableContentDiscovery bool `json:"enable_content_discovery"`

	// EnableTemporalAnalysis enables the temporal pattern matcher.
	// Default: true
	EnableTemporalAnalysis bool `json:"enable_temporal_analysis"`

	// EnableSemanticSimilarity enables the semantic matcher.
	// Default: true
	EnableSemanticSimilarity bool `json:"enable_semantic_similarity"`

	// EnableVisualSimilarity enables the visual matcher.
	// Default: true
	EnableVisualSimilarity bool `json:"enable_visual_similarity"`

	// MaxRecommendations caps related content when callers pass no limit.
	// Default: 20
	MaxRecommendations int `json:"max_recommendations" validate:"gte=1,lte=500"`

	// MinimumSimilarityScore is the inclusion threshold for related content,
	// visual matches and cluster membership.
	// Default: 0.6
	MinimumSimilarityScore float64 `json:"minimum_similarity_score" validate:"gte=0,lte=1"`

	// TemporalWindowDays is the distance at which temporal proximity reaches zero.
	// Default: 30
	TemporalWindowDays float64 `json:"temporal_window_days" validate:"gt=0"`

	// Sampling bounds how much of the candidate pool each matcher scans.
	Sampling SamplingLimits `json:"sampling"`

	// FusionWeights weights each signal in the overall similarity score.
	FusionWeights FusionWeights `json:"fusion_weights"`

	// ConfidenceWeights weights each match category in aggregate confidence.
	ConfidenceWeights ConfidenceWeights `json:"confidence_weights"`

	// Cache configures the pairwise score cache.
	Cache CacheSettings `json:"cache"`
}

// SamplingLimits bounds matcher scans to a prefix of the candidate pool.
type SamplingLimits struct {
	// RelatedContent is the prefix scanned by the related content matcher.
	// Default: 100
	RelatedContent int `json:"related_content" validate:"gte=1"`

	// Signals is the prefix scanned by the temporal, semantic, visual and
	// workflow matchers.
	// Default: 50
	Signals int `json:"signals" validate:"gte=1"`
}

// FusionWeights are the per-signal weights of the overall similarity score.
// Only signals present on both records contribute to the denominator.
type FusionWeights struct {
	// Default: 0.4
	Text float64 `json:"text" validate:"gte=0"`
	// Default: 0.3
	Visual float64 `json:"visual" validate:"gte=0"`
	// Default: 0.2
	Temporal float64 `json:"temporal" validate:"gt=0"`
	// Default: 0.1
	Tags float64 `json:"tags" validate:"gte=0"`
}

// ConfidenceWeights are the per-category weights of aggregate confidence.
type ConfidenceWeights struct {
	// Default: 0.4
	Related float64 `json:"related" validate:"gte=0,lte=1"`
	// Default: 0.2
	Temporal float64 `json:"temporal" validate:"gte=0,lte=1"`
	// Default: 0.2
	Semantic float64 `json:"semantic" validate:"gte=0,lte=1"`
	// Default: 0.1
	Visual float64 `json:"visual" validate:"gte=0,lte=1"`
	// Default: 0.1
	Workflow float64 `json:"workflow" validate:"gte=0,lte=1"`
}

// CacheSettings configures the pairwise score cache.
type CacheSettings struct {
	// Enabled turns the cache on.
	// Default: true
	Enabled bool `json:"enabled"`

	// MaxEntries is the LRU capacity.
	// Default: 50000
	MaxEntries int `json:"max_entries" validate:"gte=0"`
}

// DefaultSettings returns the standard engine configuration.
func DefaultSettings() *Settings {
	return &Settings{
		EnableContentDiscovery:   true,
		EnableTemporalAnalysis:   true,
		EnableSemanticSimilarity: true,
		EnableVisualSimilarity:   true,
		MaxRecommendations:       20,
		MinimumSimilarityScore:   0.6,
		TemporalWindowDays:       30,
		Sampling: SamplingLimits{
			RelatedContent: 100,
			Signals:        50,
		},
		FusionWeights: FusionWeights{
			Text:     0.4,
			Visual:   0.3,
			Temporal: 0.2,
			Tags:     0.1,
		},
		ConfidenceWeights: ConfidenceWeights{
			Related:  0.4,
			Temporal: 0.2,
			Semantic: 0.2,
			Visual:   0.1,
			Workflow: 0.1,
		},
		Cache: CacheSettings{
			Enabled:    true,
			MaxEntries: 50000,
		},
	}
}

// Validate checks the settings for errors. Field rules come from the
// validate tags; the checks below cover what tags cannot express.
func (s *Settings) Validate() error {
	if verr := validation.ValidateStruct(s); verr != nil {
		return verr
	}

	if math.IsInf(s.TemporalWindowDays, 0) || math.IsNaN(s.TemporalWindowDays) {
		return fmt.Errorf("temporal_window_days must be finite, got %f", s.TemporalWindowDays)
	}
	if !inUnitInterval(s.MinimumSimilarityScore) {
		return fmt.Errorf("minimum_similarity_score must be in [0, 1], got %f", s.MinimumSimilarityScore)
	}

	fw := s.FusionWeights
	for name, w := range map[string]float64{"text": fw.Text, "visual": fw.Visual, "temporal": fw.Temporal, "tags": fw.Tags} {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("fusion_weights.%s must be finite, got %f", name, w)
		}
	}

	cw := s.ConfidenceWeights
	for name, w := range map[string]float64{
		"related": cw.Related, "temporal": cw.Temporal, "semantic": cw.Semantic,
		"visual": cw.Visual, "workflow": cw.Workflow,
	} {
		if !inUnitInterval(w) {
			return fmt.Errorf("confidence_weights.%s must be in [0, 1], got %f", name, w)
		}
	}

	if s.Cache.Enabled && s.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", s.Cache.MaxEntries)
	}

	return nil
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}

func inUnitInterval(v float64) bool {
	return v >= 0 && v <= 1 && !math.IsNaN(v)
}
