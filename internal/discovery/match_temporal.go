// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"context"
	"time"
)

const (
	// hourOfDayTolerance is how far apart two capture hours may be and still
	// fall in the same bucket.
	hourOfDayTolerance = 2

	// minPatternOccurrences is the bucket size that makes a pattern.
	minPatternOccurrences = 3

	dailyPatternConfidence = 0.8
)

// matchTemporalPatterns looks for candidates captured around the same hour of
// day as the source. Three or more form a daily pattern.
//
//nolint:gocritic // hugeParam: source passed by value for immutability
func (a *analysis) matchTemporalPatterns(ctx context.Context, source Record, pool []Record) ([]TemporalMatch, error) {
	if !a.settings.EnableTemporalAnalysis {
		return []TemporalMatch{}, nil
	}

	loc := source.Timestamp.Location()
	sourceHour := source.Timestamp.Hour()

	var bucket []Record
	for _, candidate := range sample(pool, a.settings.Sampling.Signals) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if hourDistance(sourceHour, candidate.Timestamp.In(loc).Hour()) <= hourOfDayTolerance {
			bucket = append(bucket, candidate)
		}
	}

	if len(bucket) < minPatternOccurrences {
		return []TemporalMatch{}, nil
	}

	return []TemporalMatch{{
		Pattern:       PatternDaily,
		HourOfDay:     sourceHour,
		Records:       bucket,
		Confidence:    dailyPatternConfidence,
		PredictedNext: a.now.Add(24 * time.Hour),
	}}, nil
}

// hourDistance is the distance between two hours on a 24 hour clock, so 23
// and 1 are two hours apart.
func hourDistance(h1, h2 int) int {
	d := h1 - h2
	if d < 0 {
		d = -d
	}
	if d > 12 {
		d = 24 - d
	}
	return d
}
