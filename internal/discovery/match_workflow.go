// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"sort"
	"strings"
)

const (
	workflowDocumentation = "documentation"

	// minWorkflowPeers is how many candidates must share the source's keyword.
	minWorkflowPeers = 2

	workflowConfidence = 0.7
)

// workflowKeywords are checked in order; the first one with enough peers wins.
var workflowKeywords = []string{"step", "tutorial", "guide"}

// documentationNextSteps are suggested for every documentation workflow.
var documentationNextSteps = []string{
	"Review the remaining steps in order",
	"Collect these screenshots into an album",
	"Check for a missing step before or after this one",
}

// matchWorkflow detects multi-step documentation such as tutorials captured
// as a series of screenshots. It has no toggle of its own and runs whenever
// content discovery is enabled.
//
//nolint:gocritic // hugeParam: source passed by value for immutability
func (a *analysis) matchWorkflow(ctx context.Context, source Record, pool []Record) ([]WorkflowMatch, error) {
	if !source.HasText() {
		return []WorkflowMatch{}, nil
	}

	sourceText := strings.ToLower(source.ExtractedText)
	candidates := sample(pool, a.settings.Sampling.Signals)

	for _, keyword := range workflowKeywords {
		if !strings.Contains(sourceText, keyword) {
			continue
		}

		var peers []Record
		for _, candidate := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if strings.Contains(strings.ToLower(candidate.ExtractedText), keyword) {
				peers = append(peers, candidate)
			}
		}

		if len(peers) < minWorkflowPeers {
			continue
		}

		sort.SliceStable(peers, func(i, j int) bool {
			return peers[i].Timestamp.Before(peers[j].Timestamp)
		})

		return []WorkflowMatch{{
			WorkflowType: workflowDocumentation,
			Keyword:      keyword,
			Records:      peers,
			StepPosition: stepPosition(source, peers),
			Confidence:   workflowConfidence,
			NextSteps:    append([]string(nil), documentationNextSteps...),
		}}, nil
	}

	return []WorkflowMatch{}, nil
}

// stepPosition is the 1-based position of source among chronologically
// sorted peers.
//
//nolint:gocritic // hugeParam: source passed by value for immutability
func stepPosition(source Record, peers []Record) int {
	return sort.Search(len(peers), func(i int) bool {
		return !peers[i].Timestamp.Before(source.Timestamp)
	}) + 1
}
