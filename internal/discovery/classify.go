// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import "time"

const (
	// temporalRelationWindow is the capture distance below which a pair is
	// classified as temporal regardless of content.
	temporalRelationWindow = time.Hour

	// semanticRelationThreshold is the text similarity above which a pair is
	// classified as semantic.
	semanticRelationThreshold = 0.7

	// textFeatureThreshold is the text similarity above which a shared text
	// feature is reported.
	textFeatureThreshold = 0.3
)

// Classify returns the relationship type of a pair. Rules are applied in
// priority order: capture time first, then text overlap. Pairs matching
// neither are contextual.
//
//nolint:gocritic // hugeParam: records passed by value for immutability
func Classify(a, b Record) RelationshipType {
	if absDuration(a.Timestamp.Sub(b.Timestamp)) < temporalRelationWindow {
		return RelationshipTemporal
	}
	if TextSimilarity(a, b) > semanticRelationThreshold {
		return RelationshipSemantic
	}
	return RelationshipContextual
}

// MatchingFeatures lists the characteristics two records share.
//
//nolint:gocritic // hugeParam: records passed by value for immutability
func MatchingFeatures(a, b Record) []MatchingFeature {
	features := make([]MatchingFeature, 0, 1)

	if sim := TextSimilarity(a, b); sim > textFeatureThreshold {
		features = append(features, MatchingFeature{
			FeatureType: "text",
			Similarity:  sim,
			Description: "Similar text content",
		})
	}

	return features
}

// Explain renders a short human-readable description of a similarity score.
func Explain(score float64) string {
	switch {
	case score > 0.8:
		return "Very similar content and context"
	case score > 0.6:
		return "Similar themes and elements"
	default:
		return "Some shared characteristics"
	}
}
