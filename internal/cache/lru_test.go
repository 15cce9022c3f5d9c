package cache

import (
	"testing"
	"time"
)

func TestLRUCache_SetGet(t *testing.T) {
	c := NewLRUCache[string](2, time.Minute)

	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("Get(a) = %q, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Errorf("Get(missing) = true, want false")
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts a, the least recently used

	if _, ok := c.Get("a"); ok {
		t.Errorf("Get(a) = true, want evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Errorf("Get(c) = false, want present")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestLRUCache_TTLExpiry(t *testing.T) {
	c := NewLRUCache[int](10, time.Millisecond)

	c.Set("a", 1)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Errorf("Get(a) = true after TTL, want expired")
	}
}

func TestLRUCache_Flush(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Flush()

	if c.Size() != 0 {
		t.Errorf("Size() after Flush = %d, want 0", c.Size())
	}
	if _, ok := c.Get("a"); ok {
		t.Errorf("Get(a) after Flush = true, want false")
	}
}
