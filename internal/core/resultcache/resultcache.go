// Package resultcache is a small in-process TTL cache for query results
//
// Entries expire lazily: an expired entry is dropped by the Get that finds it,
// there is no background sweeper. Each Cache has its own lock and nothing is
// shared between instances.
package resultcache

import (
	"sync"
	"time"
)

// Stats is a point in time view of one cache
type Stats struct {
	Entries   int     `json:"entries"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	TTL       float64 `json:"ttl_seconds"`
}

// Option configures a Cache
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

type entry[V any] struct {
	value    V
	cachedAt time.Time
}

// Cache maps string keys to values of type V for at most ttl
type Cache[V any] struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	entries   map[string]entry[V]
	hits      uint64
	misses    uint64
	evictions uint64
}

// New returns an empty cache, a ttl of zero or less disables caching
func New[V any](ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		ttl:     ttl,
		now:     o.now,
		entries: make(map[string]entry[V]),
	}
}

// TTL returns the configured lifetime of an entry
func (c *Cache[V]) TTL() time.Duration { return c.ttl }

// Get returns the value stored under key while it is at most ttl old
func (c *Cache[V]) Get(key string) (V, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	if now.Sub(e.cachedAt) > c.ttl {
		delete(c.entries, key)
		c.evictions++
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Put stores v under key stamped with the current time, overwriting any previous value
func (c *Cache[V]) Put(key string, v V) {
	if c.ttl <= 0 {
		return
	}
	now := c.now()

	c.mu.Lock()
	c.entries[key] = entry[V]{value: v, cachedAt: now}
	c.mu.Unlock()
}

// Peek is Get without touching the counters or evicting, for re-checks by a
// caller that already counted its lookup
func (c *Cache[V]) Peek(key string) (V, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || now.Sub(e.cachedAt) > c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Len counts stored entries, including expired ones not yet evicted
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the current counters
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:   len(c.entries),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		TTL:       c.ttl.Seconds(),
	}
}
