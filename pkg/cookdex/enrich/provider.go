// Package enrich fills gaps in incomplete recipes through a fixed chain of
// external providers, guarded by a persisted cache and a feature flag.
package enrich

import (
	"context"

	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// Provider is one independently fallible enrichment source. Attempt either
// returns a usable result or an error; the orchestrator swallows errors
// and moves to the next provider. A provider is attempted exactly once per
// enrichment call.
type Provider interface {
	Name() string
	Attempt(ctx context.Context, title string) (*recipe.Enrichment, error)
}
