package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachedResult is a reconciliation result together with when it was built.
type CachedResult struct {
	// Result is the reconciliation output.
	Result *Result

	// Built is the timestamp when this result was computed.
	Built time.Time

	// TTL is the time-to-live for this entry.
	TTL time.Duration
}

// IsExpired returns true if this entry has expired based on its TTL.
func (c *CachedResult) IsExpired() bool {
	if c.TTL == 0 {
		return true // No caching
	}
	return time.Since(c.Built) > c.TTL
}

// Cache holds reconciliation results keyed by owner and provider.
// Concurrent requests for the same key share a single scan.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]*CachedResult
	sf      singleflight.Group
}

// NewCache creates a cache whose entries live for ttl. A zero ttl disables
// caching, though concurrent callers still share one in-flight scan.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]*CachedResult),
	}
}

// CacheKey returns the cache key for an engine/provider pair.
func CacheKey(e *Engine, p Provider) string {
	return string(e.owner) + "|" + p.Name()
}

// GetOrBuild returns the cached result for the engine/provider pair, or runs
// a full reconciliation if none exists or it has expired.
func (c *Cache) GetOrBuild(ctx context.Context, e *Engine, p Provider) (*CachedResult, error) {
	key := CacheKey(e, p)

	// Fast path: check if entry exists and is fresh
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !entry.IsExpired() {
		return entry, nil
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()

		if exists && !entry.IsExpired() {
			return entry, nil
		}

		result, err := e.ReconcileAll(ctx, p)
		if err != nil {
			return nil, err
		}

		fresh := &CachedResult{Result: result, Built: time.Now(), TTL: c.ttl}
		c.mu.Lock()
		c.entries[key] = fresh
		c.mu.Unlock()

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*CachedResult), nil
}

// Invalidate removes the entry for the engine/provider pair.
func (c *Cache) Invalidate(e *Engine, p Provider) {
	key := CacheKey(e, p)
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
