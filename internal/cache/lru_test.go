// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRU_BasicOperations(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, float64](3, 0)

	c.Add("a", 0.1)
	c.Add("b", 0.2)
	c.Add("c", 0.3)

	for key, want := range map[string]float64{"a": 0.1, "b": 0.2, "c": 0.3} {
		got, found := c.Get(key)
		if !found {
			t.Errorf("Expected to find key %q", key)
			continue
		}
		if got != want {
			t.Errorf("Get(%q) = %v, want %v", key, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Expected len 3, got %d", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](3, 0)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Touch 'a' so 'b' becomes least recently used
	c.Get("a")
	c.Add("d", 4)

	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}

	if stats := c.Stats(); stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](2, 0)
	c.Add("a", 1)
	c.Add("a", 2)

	if got, _ := c.Get("a"); got != 2 {
		t.Errorf("Expected updated value 2, got %d", got)
	}
	if c.Len() != 1 {
		t.Errorf("Expected len 1 after update, got %d", c.Len())
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](10, 20*time.Millisecond)
	c.Add("a", 1)

	if _, found := c.Get("a"); !found {
		t.Fatal("Expected 'a' before expiry")
	}

	time.Sleep(40 * time.Millisecond)

	if _, found := c.Get("a"); found {
		t.Error("Expected 'a' to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be collected, len=%d", c.Len())
	}
}

func TestLRU_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](10, 0)
	c.Add("a", 1)
	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get("a"); !found {
		t.Error("Expected entry without TTL to persist")
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	t.Parallel()

	c := NewLRU[int, string](5, 0)
	c.Add(1, "one")
	c.Add(2, "two")

	if !c.Remove(1) {
		t.Error("Expected Remove(1) to report presence")
	}
	if c.Remove(1) {
		t.Error("Expected second Remove(1) to report absence")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d", c.Len())
	}
	if _, found := c.Get(2); found {
		t.Error("Expected key 2 to be gone after Clear")
	}
}

func TestLRU_Stats(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](10, 0)
	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("Expected 2 hits and 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}
	if rate := stats.HitRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("Expected hit rate ~0.667, got %f", rate)
	}
	if (Stats{}).HitRate() != 0 {
		t.Error("Expected zero hit rate for empty stats")
	}
}

func TestLRU_DefaultCapacity(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](0, -time.Second)
	if stats := c.Stats(); stats.Capacity != 10000 {
		t.Errorf("Expected default capacity 10000, got %d", stats.Capacity)
	}
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](100, 0)
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (id*500+i)%150)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Expected len <= capacity, got %d", c.Len())
	}
}
