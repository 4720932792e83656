// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"sort"
)

// matchRelatedContent ranks candidates whose overall similarity reaches the
// configured minimum. Results are sorted by score, highest first, and capped
// at maxResults.
//
//nolint:gocritic // hugeParam: source passed by value for immutability
func (a *analysis) matchRelatedContent(ctx context.Context, source Record, pool []Record, maxResults int) ([]RelatedItem, error) {
	candidates := sample(pool, a.settings.Sampling.RelatedContent)
	items := make([]RelatedItem, 0)

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate := candidates[i]
		score := a.overall(source, candidate)
		if score < a.settings.MinimumSimilarityScore {
			continue
		}

		proximity := absDuration(source.Timestamp.Sub(candidate.Timestamp)).Seconds()
		items = append(items, RelatedItem{
			Record:            candidate,
			SimilarityScore:   score,
			RelationshipType:  Classify(source, candidate),
			MatchingFeatures:  MatchingFeatures(source, candidate),
			TemporalProximity: &proximity,
			Explanation:       Explain(score),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SimilarityScore > items[j].SimilarityScore
	})

	if len(items) > maxResults {
		items = items[:maxResults]
	}
	return items, nil
}
