// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package discovery

import (
	"encoding/binary"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/tomtom215/snapgraph/internal/cache"
)

// pairKey identifies an unordered pair of record fingerprints.
type pairKey struct {
	lo, hi uint64
}

func newPairKey(a, b uint64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// fingerprint hashes every field that feeds the overall score, so an edited
// record never collides with its previous version. Strings and the tag list
// are length-prefixed, so no field boundary can be forged from field content.
//
//nolint:gocritic // hugeParam: Record passed by value for immutability
func fingerprint(r Record) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	writeString := func(s string) {
		writeUint(uint64(len(s)))
		_, _ = h.Write([]byte(s))
	}

	writeString(r.ID)
	writeUint(uint64(r.Timestamp.UnixNano()))
	writeString(r.ExtractedText)
	writeUint(uint64(len(r.Tags)))
	for _, tag := range r.Tags {
		writeString(tag)
	}

	if r.Visual == nil {
		_, _ = h.Write([]byte{0})
		return h.Sum64()
	}
	doc := byte(0)
	if r.Visual.IsDocument {
		doc = 1
	}
	_, _ = h.Write([]byte{1, doc})
	writeUint(uint64(r.Visual.ProminentObjectCount))

	return h.Sum64()
}

// analysis is the per-call state shared by the matchers of one cycle.
// Everything except the cache tallies is read-only once built.
type analysis struct {
	settings *Settings
	scorer   Scorer
	scores   *cache.LRU[pairKey, float64]
	now      time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// overall returns the fused score of a pair, consulting the shared cache.
//
//nolint:gocritic // hugeParam: records passed by value for immutability
func (a *analysis) overall(x, y Record) float64 {
	if a.scores == nil {
		return a.scorer.Overall(x, y)
	}

	key := newPairKey(fingerprint(x), fingerprint(y))
	if score, ok := a.scores.Get(key); ok {
		a.hits.Add(1)
		return score
	}

	a.misses.Add(1)
	score := a.scorer.Overall(x, y)
	a.scores.Add(key, score)
	return score
}

// cacheHitRate returns the hit rate of this call's lookups.
func (a *analysis) cacheHitRate() float64 {
	hits, misses := a.hits.Load(), a.misses.Load()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

// sample returns the prefix of pool a matcher may scan.
func sample(pool []Record, limit int) []Record {
	if len(pool) > limit {
		return pool[:limit]
	}
	return pool
}
