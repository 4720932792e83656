// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

/*
Package cache provides thread-safe in-memory caches.

# Overview

LRU is a generic least recently used cache with optional TTL. The discovery
engine uses it to memoize pairwise similarity scores keyed by content
fingerprints, so a changed record can never be served a stale score.

# Usage Example

	c := cache.NewLRU[string, float64](50000, 0)

	c.Add("a|b", 0.72)
	if score, ok := c.Get("a|b"); ok {
	    // use score
	}

	stats := c.Stats()
	fmt.Printf("hit rate %.2f\n", stats.HitRate())

# Thread Safety

All methods take a single mutex. Get mutates recency order, so reads are
exclusive as well.

# Expiration

A TTL of zero disables expiration. With a positive TTL entries expire lazily
on Get; expired entries still count toward capacity until touched or
evicted.
*/
package cache
