// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"sort"
)

const (
	semanticMatchThreshold = 0.3
	maxSemanticMatches     = 10
)

// matchSemantic keeps candidates whose text overlaps the source or that
// mention the same named entities.
//
//nolint:gocritic // hugeParam: source passed by value for immutability
func (a *analysis) matchSemantic(ctx context.Context, source Record, pool []Record) ([]SemanticMatch, error) {
	if !a.settings.EnableSemanticSimilarity || !source.HasText() {
		return []SemanticMatch{}, nil
	}

	sourceWords := Tokenize(source.ExtractedText)
	sourceEntities := ExtractEntities(source.ExtractedText)

	matches := make([]SemanticMatch, 0)
	for _, candidate := range sample(pool, a.settings.Sampling.Signals) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !candidate.HasText() {
			continue
		}

		similarity := Jaccard(sourceWords, Tokenize(candidate.ExtractedText))
		shared := intersectEntities(sourceEntities, ExtractEntities(candidate.ExtractedText))

		if similarity >= semanticMatchThreshold || len(shared) > 0 {
			matches = append(matches, SemanticMatch{
				Record:         candidate,
				Similarity:     similarity,
				SharedEntities: shared,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > maxSemanticMatches {
		matches = matches[:maxSemanticMatches]
	}
	return matches, nil
}
