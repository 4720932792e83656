// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

// Package provider guards record fetches with a circuit breaker.
//
// Resilient wraps any discovery.RecordProvider. Corpus and CandidatePool
// never fail: provider errors and an open circuit yield an empty pool and
// increment provider_fallbacks_total. Source returns errors unchanged.
// Missing records and cancelled requests do not count against the breaker.
package provider
