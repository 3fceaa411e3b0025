package enrich

import (
	"context"

	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// WebSearch is the credential-gated web-search provider. The search
// integration itself is not wired up yet, so every attempt reports no
// result; the type exists so the provider chain and its configuration
// stay stable.
type WebSearch struct {
	apiKey string
}

// NewWebSearch builds the provider with the given search credential.
func NewWebSearch(apiKey string) *WebSearch {
	return &WebSearch{apiKey: apiKey}
}

// Name implements Provider.
func (w *WebSearch) Name() string { return "websearch" }

// Attempt implements Provider.
func (w *WebSearch) Attempt(ctx context.Context, title string) (*recipe.Enrichment, error) {
	if w.apiKey == "" {
		return nil, internalerr.ErrMissingCredential
	}
	// TODO: fetch result pages and extract ingredients/steps with the
	// model provider.
	return nil, internalerr.ErrNoResult
}
