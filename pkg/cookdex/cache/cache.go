// Package cache defines the persisted enrichment cache abstraction. The
// cache is an at-most-once-per-title computation guard, not a TTL cache:
// entries are immutable once written and no provider is re-queried for a
// cached title.
package cache

import (
	"context"

	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// Cache maps normalized recipe titles to enrichment results.
//
// Put follows first-write-wins semantics: writing a key that already holds
// an entry leaves the stored entry untouched.
type Cache interface {
	Get(ctx context.Context, key string) (recipe.Enrichment, bool, error)
	Put(ctx context.Context, key string, e recipe.Enrichment) error
	Close() error
}
