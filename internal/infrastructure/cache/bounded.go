package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/flipradar/backend/internal/domain"
)

const (
	defaultTTL        = 5 * time.Minute
	defaultMaxEntries = 200
)

// entry is a cached value plus its insertion time
type entry struct {
	value      any
	insertedAt time.Time
}

// BoundedCache is a mutex-guarded in-memory cache with a TTL and a hard
// capacity. Expired entries are evicted lazily on read; capacity overflow
// evicts the single oldest-inserted entry on write. There is no background
// sweeper: an entry past its TTL simply can never be observed.
type BoundedCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]entry
	order   []string // insertion order, oldest first
	clock   clockwork.Clock
}

// NewBoundedCache creates a cache with the given TTL and capacity,
// substituting defaults for non-positive values.
func NewBoundedCache(ttl time.Duration, max int) *BoundedCache {
	return newBoundedCache(ttl, max, clockwork.NewRealClock())
}

// newBoundedCache lets tests substitute a fake clock
func newBoundedCache(ttl time.Duration, max int, clock clockwork.Clock) *BoundedCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if max <= 0 {
		max = defaultMaxEntries
	}
	return &BoundedCache{
		ttl:     ttl,
		max:     max,
		entries: make(map[string]entry),
		clock:   clock,
	}
}

// Get returns the cached value for key, or ErrCacheMiss when the key is
// absent or its entry has outlived the TTL. An expired entry is removed on
// the way out.
func (c *BoundedCache) Get(key string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if c.clock.Since(e.insertedAt) > c.ttl {
		c.remove(key)
		return nil, domain.ErrCacheMiss
	}
	return e.value, nil
}

// Set stores value under key. Updating an existing key refreshes its value
// and timestamp but keeps its insertion position. Inserting a new key at
// capacity first evicts the oldest-inserted entry, so the cache never
// exceeds its configured size.
func (c *BoundedCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry{value: value, insertedAt: c.clock.Now()}
		return
	}

	if len(c.entries) >= c.max && len(c.order) > 0 {
		c.remove(c.order[0])
	}

	c.entries[key] = entry{value: value, insertedAt: c.clock.Now()}
	c.order = append(c.order, key)
}

// Clear removes all entries
func (c *BoundedCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.order = nil
}

// Len returns the current number of entries, counting any not yet observed
// as expired.
func (c *BoundedCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes key from both the entry map and the insertion order.
// Caller holds the lock.
func (c *BoundedCache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
