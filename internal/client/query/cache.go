// Package query provides a typed, key-addressed cache of server data with
// explicit invalidation and read-modify-write support for optimistic
// updates.
package query

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type entry[T any] struct {
	value   T
	valid   bool
	version uint64
}

// Cache is a key-addressed store. Every write and every invalidation bumps
// the key's version; readers that captured a version before issuing a fetch
// can use SetIfVersion to discard responses that arrive after the entry has
// moved on (the stale-response guard).
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[T]
	logger  *zap.Logger

	hits   int64
	misses int64
}

// Option is a functional option for configuring the cache.
type Option[T any] func(*Cache[T])

// WithLogger sets the logger used for cache events.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(c *Cache[T]) {
		c.logger = logger
	}
}

func New[T any](opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		entries: make(map[string]*entry[T]),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key, if any.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !e.valid {
		atomic.AddInt64(&c.misses, 1)
		var zero T
		return zero, false
	}
	atomic.AddInt64(&c.hits, 1)
	return e.value, true
}

// Version returns the current version of key. Unknown keys are version 0.
func (c *Cache[T]) Version(key string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[key]; ok {
		return e.version
	}
	return 0
}

// Set stores value under key and bumps its version.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// SetIfVersion stores value only if the key's version still matches the one
// captured before the fetch was issued. Returns false when the write was
// discarded as stale.
func (c *Cache[T]) SetIfVersion(key string, version uint64, value T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := uint64(0)
	if e, ok := c.entries[key]; ok {
		current = e.version
	}
	if current != version {
		c.logger.Debug("discarding stale cache write",
			zap.String("key", key),
			zap.Uint64("have", current),
			zap.Uint64("want", version))
		return false
	}
	c.store(key, value)
	return true
}

// Update applies fn to the cached value in place. Returns false when the key
// has no cached value to update.
func (c *Cache[T]) Update(key string, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.valid {
		return false
	}
	c.store(key, fn(e.value))
	return true
}

// Invalidate marks key stale so the next read triggers a fresh fetch.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{}
		c.entries[key] = e
	}
	var zero T
	e.value = zero
	e.valid = false
	e.version++
	c.logger.Debug("cache invalidated", zap.String("key", key))
}

// Clear invalidates every entry. Each key keeps its version history so
// in-flight fetches are still discarded by SetIfVersion.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	for _, e := range c.entries {
		e.value = zero
		e.valid = false
		e.version++
	}
	c.logger.Debug("cache cleared", zap.Int("entries", len(c.entries)))
}

// Stats reports hit and miss counters.
func (c *Cache[T]) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// store assumes the write lock is held.
func (c *Cache[T]) store(key string, value T) {
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{}
		c.entries[key] = e
	}
	e.value = value
	e.valid = true
	e.version++
}
