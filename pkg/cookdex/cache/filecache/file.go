// Package filecache persists the enrichment cache as a single JSON file.
// Writes replace the whole file via a temp file and rename, so a crash
// mid-write never corrupts the existing cache.
package filecache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// Cache is a file-backed enrichment cache. The file is loaded lazily on
// first access; an unreadable or malformed file degrades to an empty cache
// rather than failing the pipeline.
type Cache struct {
	path string

	mu      sync.Mutex
	loaded  bool
	entries map[string]recipe.Enrichment
}

// Open creates a cache backed by the given JSON file. The file does not
// need to exist yet.
func Open(path string) *Cache {
	return &Cache{path: path}
}

func (c *Cache) load() {
	if c.loaded {
		return
	}
	c.loaded = true
	c.entries = make(map[string]recipe.Enrichment)

	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	// A malformed file is treated as empty, same as a missing one.
	var entries map[string]recipe.Enrichment
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	c.entries = entries
}

// Get returns the entry for key, if present.
func (c *Cache) Get(ctx context.Context, key string) (recipe.Enrichment, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	e, ok := c.entries[key]
	return e, ok, nil
}

// Put stores the entry unless the key is already populated, then rewrites
// the backing file atomically. A write failure is reported but the entry
// stays available in memory.
func (c *Cache) Put(ctx context.Context, key string, e recipe.Enrichment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	if _, ok := c.entries[key]; ok {
		return nil
	}
	c.entries[key] = e

	if err := c.flush(); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrCacheIO, err)
	}
	return nil
}

// flush writes the full entry map to a temp file and renames it over the
// cache path.
func (c *Cache) flush() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

// Close implements cache.Cache.
func (c *Cache) Close() error { return nil }
