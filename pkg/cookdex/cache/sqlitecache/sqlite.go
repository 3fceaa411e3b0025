// Package sqlitecache persists the enrichment cache in SQLite, for setups
// where the cache is shared between runs or processes. WAL mode keeps
// concurrent readers cheap and serializes writers.
package sqlitecache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// Cache is a SQLite-backed enrichment cache.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS enrichments (
	key TEXT PRIMARY KEY,
	ingredients TEXT NOT NULL,
	steps TEXT NOT NULL,
	source TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Get returns the entry for key, if present.
func (c *Cache) Get(ctx context.Context, key string) (recipe.Enrichment, bool, error) {
	var ingredientsJSON, stepsJSON, source, fetchedAt string
	err := c.db.QueryRowContext(ctx,
		"SELECT ingredients, steps, source, fetched_at FROM enrichments WHERE key = ?", key,
	).Scan(&ingredientsJSON, &stepsJSON, &source, &fetchedAt)
	if err == sql.ErrNoRows {
		return recipe.Enrichment{}, false, nil
	}
	if err != nil {
		return recipe.Enrichment{}, false, fmt.Errorf("%w: %v", internalerr.ErrCacheIO, err)
	}

	e := recipe.Enrichment{Source: source}
	if err := json.Unmarshal([]byte(ingredientsJSON), &e.Ingredients); err != nil {
		return recipe.Enrichment{}, false, fmt.Errorf("%w: %v", internalerr.ErrCacheIO, err)
	}
	if err := json.Unmarshal([]byte(stepsJSON), &e.Steps); err != nil {
		return recipe.Enrichment{}, false, fmt.Errorf("%w: %v", internalerr.ErrCacheIO, err)
	}
	if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
		e.FetchedAt = t
	}
	return e, true, nil
}

// Put stores the entry. INSERT OR IGNORE keeps existing entries immutable.
func (c *Cache) Put(ctx context.Context, key string, e recipe.Enrichment) error {
	ingredientsJSON, err := json.Marshal(e.Ingredients)
	if err != nil {
		return err
	}
	stepsJSON, err := json.Marshal(e.Steps)
	if err != nil {
		return err
	}

	_, err = c.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO enrichments (key, ingredients, steps, source, fetched_at) VALUES (?, ?, ?, ?, ?)",
		key, string(ingredientsJSON), string(stepsJSON), e.Source, e.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrCacheIO, err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
