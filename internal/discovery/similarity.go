// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"math"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Scorer computes pairwise signal scores and their weighted fusion.
// The zero value is not usable; build one with NewScorer.
type Scorer struct {
	weights    FusionWeights
	windowDays float64
}

// NewScorer creates a scorer from engine settings.
func NewScorer(s *Settings) Scorer {
	return Scorer{
		weights:    s.FusionWeights,
		windowDays: s.TemporalWindowDays,
	}
}

// Overall returns the weighted fusion of every signal available on both
// records. Signals missing on either side are left out of the denominator.
// The result is always in [0, 1].
//
//nolint:gocritic // hugeParam: records passed by value for immutability
func (sc Scorer) Overall(a, b Record) float64 {
	var sum, weights float64

	if a.HasText() && b.HasText() {
		sum += TextSimilarity(a, b) * sc.weights.Text
		weights += sc.weights.Text
	}

	if a.Visual != nil && b.Visual != nil {
		sum += VisualSimilarity(a.Visual, b.Visual) * sc.weights.Visual
		weights += sc.weights.Visual
	}

	sum += sc.TemporalProximity(a, b) * sc.weights.Temporal
	weights += sc.weights.Temporal

	if a.HasTags() && b.HasTags() {
		sum += TagSimilarity(a, b) * sc.weights.Tags
		weights += sc.weights.Tags
	}

	if weights == 0 {
		return 0
	}
	return clamp01(sum / weights)
}

// TemporalProximity is 1 for simultaneous captures and falls linearly to 0
// at the configured window.
//
//nolint:gocritic // hugeParam: records passed by value for immutability
func (sc Scorer) TemporalProximity(a, b Record) float64 {
	days := absDuration(a.Timestamp.Sub(b.Timestamp)).Seconds() / secondsPerDay
	return math.Max(0, 1-days/sc.windowDays)
}

// Tokenize splits text on whitespace and returns the set of lowercase words.
func Tokenize(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// TagSet returns the lowercase set of tags.
func TagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}

// Jaccard returns |A ∩ B| / |A ∪ B|, or 0 when the union is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// TextSimilarity is the Jaccard similarity of the two records' word sets.
//
//nolint:gocritic // hugeParam: records passed by value for immutability
func TextSimilarity(a, b Record) float64 {
	return Jaccard(Tokenize(a.ExtractedText), Tokenize(b.ExtractedText))
}

// TagSimilarity is the Jaccard similarity of the two records' tag sets.
//
//nolint:gocritic // hugeParam: records passed by value for immutability
func TagSimilarity(a, b Record) float64 {
	return Jaccard(TagSet(a.Tags), TagSet(b.Tags))
}

// ColorProxy approximates color similarity from the document flag alone:
// 0.8 when both agree, 0.2 otherwise.
func ColorProxy(a, b *VisualAttributes) float64 {
	if a.IsDocument == b.IsDocument {
		return 0.8
	}
	return 0.2
}

// LayoutProxy compares prominent object counts.
func LayoutProxy(a, b *VisualAttributes) float64 {
	c1, c2 := a.ProminentObjectCount, b.ProminentObjectCount
	switch {
	case c1 <= 0 && c2 <= 0:
		return 1
	case c1 <= 0 || c2 <= 0:
		return 0
	}

	hi := math.Max(float64(c1), float64(c2))
	return 1 - math.Abs(float64(c1-c2))/hi
}

// VisualSimilarity is the mean of the color and layout proxies.
func VisualSimilarity(a, b *VisualAttributes) float64 {
	return (ColorProxy(a, b) + LayoutProxy(a, b)) / 2
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
