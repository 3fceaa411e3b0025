// Package memcache is an in-memory cache.Cache, used by tests and as a
// fallback when no durable backend is configured.
package memcache

import (
	"context"
	"sync"

	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// Cache is an in-memory enrichment cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]recipe.Enrichment
}

// New creates an empty in-memory cache.
func New() *Cache {
	return &Cache{entries: make(map[string]recipe.Enrichment)}
}

// Get returns the entry for key, if present.
func (c *Cache) Get(ctx context.Context, key string) (recipe.Enrichment, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok, nil
}

// Put stores the entry unless the key is already populated.
func (c *Cache) Put(ctx context.Context, key string, e recipe.Enrichment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return nil
	}
	c.entries[key] = e
	return nil
}

// Close implements cache.Cache.
func (c *Cache) Close() error { return nil }

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
