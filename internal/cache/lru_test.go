package cache

import (
	"testing"
	"time"
)

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[string](2, 0)
	c.Set("a", "1")
	c.Set("b", "2")

	if _, ok := c.Get("a"); !ok { // a is now most recent
		t.Fatalf("expected a")
	}
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("a should survive, got %q %v", v, ok)
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestLRUCacheTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](4, time.Minute).WithClock(func() time.Time { return now })

	c.Set("k", 42)
	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Fatalf("expected fresh value")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired value")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry should be removed on read")
	}
}

func TestLRUCacheStatsAndPurge(t *testing.T) {
	c := NewLRUCache[int](4, 0)
	c.Set("k", 1)
	c.Get("k")
	c.Get("missing")

	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}

	c.Delete("k")
	if c.Size() != 0 {
		t.Fatalf("expected empty after delete")
	}

	c.Set("k", 1)
	c.Purge()
	if c.Size() != 0 || c.Stats() != (Stats{}) {
		t.Fatalf("purge should reset entries and stats")
	}
}
