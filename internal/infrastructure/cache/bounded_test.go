package cache

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/flipradar/backend/internal/domain"
)

func TestBoundedCacheSetAndGet(t *testing.T) {
	c := NewBoundedCache(time.Minute, 10)

	c.Set("asin:B0TEST", "value")
	got, err := c.Get("asin:B0TEST")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "value" {
		t.Errorf("Get() = %v, want value", got)
	}
}

func TestBoundedCacheMiss(t *testing.T) {
	c := NewBoundedCache(time.Minute, 10)

	_, err := c.Get("absent")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestBoundedCacheTTLExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newBoundedCache(5*time.Minute, 10, clock)

	c.Set("key", "value")

	t.Run("fresh entry is served", func(t *testing.T) {
		if _, err := c.Get("key"); err != nil {
			t.Errorf("Get() error = %v, want nil", err)
		}
	})

	t.Run("entry at exactly the TTL is still served", func(t *testing.T) {
		clock.Advance(5 * time.Minute)
		if _, err := c.Get("key"); err != nil {
			t.Errorf("Get() at TTL error = %v, want nil", err)
		}
	})

	t.Run("expired entry misses and is removed", func(t *testing.T) {
		clock.Advance(time.Millisecond)
		if _, err := c.Get("key"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("Get() error = %v, want ErrCacheMiss", err)
		}
		if c.Len() != 0 {
			t.Errorf("Len() = %d, want 0 after lazy eviction", c.Len())
		}
	})
}

func TestBoundedCacheCapacityEviction(t *testing.T) {
	const max = 5
	c := NewBoundedCache(time.Hour, max)

	for i := 0; i < max+1; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}

	if c.Len() != max {
		t.Errorf("Len() = %d, want %d (capacity is a hard bound)", c.Len(), max)
	}

	// Exactly the first-inserted key is gone
	if _, err := c.Get("key-0"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("key-0 still present, want evicted")
	}
	for i := 1; i <= max; i++ {
		if _, err := c.Get(fmt.Sprintf("key-%d", i)); err != nil {
			t.Errorf("key-%d missing, want present", i)
		}
	}
}

func TestBoundedCacheUpdateKeepsPosition(t *testing.T) {
	c := NewBoundedCache(time.Hour, 2)

	c.Set("first", 1)
	c.Set("second", 2)
	c.Set("first", 10) // update, not an insert: no eviction

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	// Next insert still evicts "first" as the oldest-inserted key
	c.Set("third", 3)
	if _, err := c.Get("first"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Error("first still present, want evicted as oldest insert")
	}
	if got, err := c.Get("second"); err != nil || got != 2 {
		t.Errorf("second = %v, %v; want 2", got, err)
	}
}

func TestBoundedCacheClear(t *testing.T) {
	c := NewBoundedCache(time.Hour, 10)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after Clear", c.Len())
	}
	if _, err := c.Get("a"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get after Clear error = %v, want ErrCacheMiss", err)
	}
}

func TestBoundedCacheDefaults(t *testing.T) {
	c := NewBoundedCache(0, 0)
	if c.ttl != defaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, defaultTTL)
	}
	if c.max != defaultMaxEntries {
		t.Errorf("max = %d, want %d", c.max, defaultMaxEntries)
	}
}

func TestBoundedCacheConcurrentAccess(t *testing.T) {
	c := NewBoundedCache(time.Minute, 50)
	done := make(chan struct{})

	for w := 0; w < 4; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("key-%d", i%60)
				c.Set(key, w)
				c.Get(key)
			}
		}(w)
	}
	for w := 0; w < 4; w++ {
		<-done
	}

	if c.Len() > 50 {
		t.Errorf("Len() = %d, want <= 50 under concurrent writes", c.Len())
	}
}
