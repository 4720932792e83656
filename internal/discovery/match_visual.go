// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"sort"
)

const maxVisualMatches = 10

// matchVisual keeps candidates whose visual proxies average at least the
// configured minimum similarity.
//
//nolint:gocritic // hugeParam: source passed by value for immutability
func (a *analysis) matchVisual(ctx context.Context, source Record, pool []Record) ([]VisualMatch, error) {
	if !a.settings.EnableVisualSimilarity || source.Visual == nil {
		return []VisualMatch{}, nil
	}

	matches := make([]VisualMatch, 0)
	for _, candidate := range sample(pool, a.settings.Sampling.Signals) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if candidate.Visual == nil {
			continue
		}

		color := ColorProxy(source.Visual, candidate.Visual)
		layout := LayoutProxy(source.Visual, candidate.Visual)
		similarity := (color + layout) / 2

		if similarity >= a.settings.MinimumSimilarityScore {
			matches = append(matches, VisualMatch{
				Record:           candidate,
				ColorSimilarity:  color,
				LayoutSimilarity: layout,
				Similarity:       similarity,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if len(matches) > maxVisualMatches {
		matches = matches[:maxVisualMatches]
	}
	return matches, nil
}
