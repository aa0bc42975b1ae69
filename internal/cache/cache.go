// file: internal/cache/cache.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7a8b-9c0d-1e2f3a4b5c6d

package cache

import (
	"sync"
	"time"

	"github.com/shopkit/storefront/internal/metrics"
)

type entry struct {
	value    any
	storedAt time.Time
}

// ResponseCache is a process-wide per-user response cache with TTL expiry and
// point invalidation, safe for concurrent use.
//
// Keys are derived as prefix + "_" + uid. Entries expire lazily: an expired
// entry observed during lookup is removed before the miss is recorded, so a
// stale value is never returned past its TTL. Failed computations are never
// stored. There is no size bound; the process is the single point of caching.
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	defaultTTL time.Duration
	prefixTTL  map[string]time.Duration
	now        func() time.Time
}

// Option configures a ResponseCache at construction time.
type Option func(*ResponseCache)

// WithClock injects a clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *ResponseCache) { c.now = now }
}

// WithPrefixTTL fixes the TTL for one key prefix. TTLs are per-prefix and
// set at configuration time, never per call.
func WithPrefixTTL(prefix string, ttl time.Duration) Option {
	return func(c *ResponseCache) { c.prefixTTL[prefix] = ttl }
}

// New creates a cache with the given default TTL.
func New(defaultTTL time.Duration, opts ...Option) *ResponseCache {
	c := &ResponseCache{
		items:      make(map[string]entry),
		defaultTTL: defaultTTL,
		prefixTTL:  make(map[string]time.Duration),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(prefix, uid string) string {
	return prefix + "_" + uid
}

func (c *ResponseCache) ttlFor(prefix string) time.Duration {
	if ttl, ok := c.prefixTTL[prefix]; ok {
		return ttl
	}
	return c.defaultTTL
}

// GetOrCompute returns the live cached value for (prefix, uid), or invokes
// compute, stores its result, and returns it.
//
// An empty uid bypasses the cache entirely: anonymous or malformed requests
// must never share a cache key, so they always hit compute directly.
func (c *ResponseCache) GetOrCompute(prefix, uid string, compute func() (any, error)) (any, error) {
	if uid == "" {
		return compute()
	}

	key := cacheKey(prefix, uid)
	now := c.now()

	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if ok {
		if now.Sub(e.storedAt) < c.ttlFor(prefix) {
			metrics.IncCacheHit(prefix)
			return e.value, nil
		}
		// Expired: remove before recording the miss.
		c.mu.Lock()
		if cur, still := c.items[key]; still && cur.storedAt.Equal(e.storedAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
	}

	metrics.IncCacheMiss(prefix)
	value, err := compute()
	if err != nil {
		// No negative caching: the next call re-attempts.
		return nil, err
	}

	c.mu.Lock()
	c.items[key] = entry{value: value, storedAt: now}
	c.mu.Unlock()
	return value, nil
}

// Invalidate removes the entry for (prefix, uid) if present; no-op otherwise.
// Every handler that mutates data a cached read depends on must call this.
func (c *ResponseCache) Invalidate(prefix, uid string) {
	if uid == "" {
		return
	}
	metrics.IncCacheInvalidation(prefix)
	c.mu.Lock()
	delete(c.items, cacheKey(prefix, uid))
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
