// Package cache provides a small in-memory TTL cache.
package cache

import (
	"sync"
	"time"
)

// Cache is a keyed in-memory cache with a fixed TTL per entry.
// It is safe for concurrent use. A background goroutine sweeps
// expired entries; call Stop when the cache is no longer needed.
type Cache[T any] struct {
	ttl      time.Duration
	mu       sync.RWMutex
	items    map[string]item[T]
	done     chan struct{}
	stopOnce sync.Once
}

type item[T any] struct {
	value     T
	expiresAt time.Time
}

// New creates a cache with the given TTL.
func New[T any](ttl time.Duration) *Cache[T] {
	if ttl <= 0 {
		ttl = time.Hour
	}

	c := &Cache[T]{
		ttl:   ttl,
		items: make(map[string]item[T]),
		done:  make(chan struct{}),
	}

	go c.sweep()

	return c
}

// Get returns the cached value for key and whether it is still fresh.
// Expired entries are treated as absent.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || time.Now().After(it.expiresAt) {
		var zero T
		return zero, false
	}

	return it.value, true
}

// Set stores value under key with the cache's TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate removes the entry for key, if present.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes all entries.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]item[T])
}

// Stop shuts down the background sweeper.
func (c *Cache[T]) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}

// sweep periodically drops expired entries so the map doesn't grow
// with keys that are never read again.
func (c *Cache[T]) sweep() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, it := range c.items {
				if now.After(it.expiresAt) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
