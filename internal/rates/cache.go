package rates

import (
	"sync"
	"time"
)

// DefaultTTL is the default lifetime of a cached rate entry.
const DefaultTTL = 24 * time.Hour

// Clock supplies the current time. Injectable so tests can control expiry
// without wall-clock sleeps.
type Clock func() time.Time

// CacheStats is the observable state of the cache.
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Expired int64 `json:"expired"`
}

type cacheEntry struct {
	info     LocalRateInfo
	storedAt time.Time
}

// Cache is a TTL cache for resolved local rates, keyed by (state, zip).
// Expiry is lazy: entries are checked on read, never actively evicted.
// Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     Clock
	entries map[string]cacheEntry

	hits    int64
	misses  int64
	expired int64
}

// NewCache creates a cache with the given TTL. A nil clock uses time.Now;
// a non-positive ttl uses DefaultTTL.
func NewCache(ttl time.Duration, now Clock) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(state, zip string) string {
	return state + ":" + zip
}

// Get returns the live entry for (state, zip). An entry older than the TTL
// is treated as absent and removed.
func (c *Cache) Get(state, zip string) (LocalRateInfo, bool) {
	key := cacheKey(state, zip)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return LocalRateInfo{}, false
	}

	if c.now().Sub(e.storedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, still := c.entries[key]; still && c.now().Sub(cur.storedAt) >= c.ttl {
			delete(c.entries, key)
		}
		c.expired++
		c.misses++
		c.mu.Unlock()
		return LocalRateInfo{}, false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	return e.info, true
}

// Set stores an entry stamped with the current clock time.
func (c *Cache) Set(state, zip string, info LocalRateInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(state, zip)] = cacheEntry{info: info, storedAt: c.now()}
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
		Expired: c.expired,
	}
}

// Clear drops all entries. Counters are preserved.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
