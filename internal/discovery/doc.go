// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

// Package discovery implements the content relationship and recommendation
// engine for screenshot libraries.
//
// # Architecture
//
// Given a source record and a pool of candidate records the engine scores
// multi-dimensional similarity and produces ranked, explained recommendations:
//
//   - Scorer: pairwise text, visual, temporal and tag signals fused into one score
//   - Classifier: relationship type, matching features and a short explanation
//   - Matchers: five bounded scans (related content, temporal pattern,
//     semantic, visual, workflow) producing typed match lists
//   - Engine: concurrent fan-out over the matchers, aggregate confidence, metrics
//   - FindClusters: greedy single-pass partition of a corpus
//
// # Signals
//
// Each signal only participates in fusion when both records carry the data it
// needs. Temporal proximity is always present:
//
//	text      Jaccard over lowercase word sets            weight 0.4
//	visual    mean of color and layout proxies            weight 0.3
//	temporal  max(0, 1 - |dt| / window)                   weight 0.2
//	tags      Jaccard over lowercase tag sets             weight 0.1
//
// The color and layout proxies are coarse approximations derived from the
// document flag and the prominent object count. No pixel data is inspected.
//
// # Usage
//
//	engine, err := discovery.NewEngine(discovery.DefaultSettings(), logger)
//	if err != nil {
//	    return err
//	}
//
//	result, err := engine.GenerateRecommendations(ctx, source, pool, 20)
//	clusters, err := engine.FindClusters(ctx, corpus)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Matchers only read their inputs. The
// pairwise score cache is internally locked and profile updates are
// serialized behind a single writer lock. Clustering runs sequentially and
// owns its processed set for the duration of one call.
//
// # Cancellation
//
// Every matcher checks the context between candidates. A cancelled call
// returns the context error and leaves the profile and published state as
// they were.
package discovery
