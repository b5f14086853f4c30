package geo

import (
	"sync"
	"time"
)

type cacheEntry struct {
	lat       float64
	lon       float64
	expiresAt time.Time
}

// Cache is a process-scoped postcode → coordinates cache. TTL and clock are
// injected so expiry is testable without sleeping. Reads take the shared lock;
// racing writes for the same key carry identical values, so last-write-wins
// is harmless.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *Cache) Get(key string) (lat, lon float64, ok bool) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	if !found || c.now().After(e.expiresAt) {
		return 0, 0, false
	}
	return e.lat, e.lon, true
}

func (c *Cache) Put(key string, lat, lon float64) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		lat:       lat,
		lon:       lon,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
