// Package cookdex turns a loosely structured recipe document into
// queryable records and plans meals against a free-text pantry query.
//
// The Planner composes the pipeline: fetch catalog, token-overlap
// pre-filter, per-candidate completeness check and enrichment,
// non-destructive merge, ingredient-aware re-ranking, exclusion filter,
// truncation.
package cookdex

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cookdex/cookdex/pkg/cookdex/assess"
	"github.com/cookdex/cookdex/pkg/cookdex/merge"
	"github.com/cookdex/cookdex/pkg/cookdex/rank"
	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
	"github.com/cookdex/cookdex/pkg/cookdex/search"
)

const defaultPrefilter = 12

// CatalogSource supplies the parsed recipe catalog. The document-source
// client is the production implementation; tests use in-memory fakes.
type CatalogSource interface {
	Recipes(ctx context.Context) ([]recipe.Recipe, error)
}

// Enricher abstracts the enrichment orchestrator. A nil result means no
// enrichment is available for the title.
type Enricher interface {
	Enrich(ctx context.Context, title string) *recipe.Enrichment
}

// Options configures a Planner.
type Options struct {
	Source   CatalogSource
	Assessor *assess.Assessor
	Enricher Enricher // nil disables enrichment entirely
	Merger   *merge.Merger

	// Prefilter is how many retrieval candidates feed the enrichment and
	// re-ranking stages.
	Prefilter int
}

// Planner is the end-to-end planning facade.
type Planner struct {
	source    CatalogSource
	assessor  *assess.Assessor
	enricher  Enricher
	merger    *merge.Merger
	prefilter int

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a Planner. Source is required; everything else has
// defaults.
func New(opts Options) *Planner {
	if opts.Assessor == nil {
		opts.Assessor = assess.New(nil)
	}
	if opts.Merger == nil {
		opts.Merger = merge.New(nil, nil)
	}
	if opts.Prefilter <= 0 {
		opts.Prefilter = defaultPrefilter
	}
	return &Planner{
		source:    opts.Source,
		assessor:  opts.Assessor,
		enricher:  opts.Enricher,
		merger:    opts.Merger,
		prefilter: opts.Prefilter,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// PlanRequest is one planning query.
type PlanRequest struct {
	// Query is the free-text "what do I have" pantry description.
	Query string

	// Exclude lists terms that must not appear in a result's title or
	// ingredients.
	Exclude []string

	// TopK bounds the response; defaults to 5.
	TopK int

	// Strict requires every query token to match for a record to survive
	// the pre-filter.
	Strict bool
}

// PlanResponse is the ranked answer for one request.
type PlanResponse struct {
	ID    string           `json:"id"`
	Query string           `json:"query"`
	Items []rank.Candidate `json:"items"`
}

// Plan runs the full pipeline. An empty result list is a valid answer;
// only catalog-fetch failures surface as errors.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (PlanResponse, error) {
	if req.TopK <= 0 {
		req.TopK = 5
	}

	catalog, err := p.source.Recipes(ctx)
	if err != nil {
		return PlanResponse{}, fmt.Errorf("fetch catalog: %w", err)
	}

	pre := search.Search(req.Query, catalog, req.Strict, p.prefilter)
	pantry := search.Dedup(search.Tokenize(req.Query))

	items := make([]rank.Candidate, 0, len(pre))
	for _, hit := range pre {
		rec := recipe.Recipe{
			Title:            hit.Title,
			Body:             hit.Body,
			EnrichmentSource: recipe.SourceOriginal,
		}

		var enriched *recipe.Enrichment
		if p.enricher != nil {
			if verdict := p.assessor.Assess(rec); !verdict.Complete {
				enriched = p.enricher.Enrich(ctx, rec.Title)
			}
		}
		merged := p.merger.Merge(rec, enriched)

		c := rank.Candidate{
			Title:            merged.Title,
			Ingredients:      merged.Ingredients,
			Steps:            merged.Steps,
			Body:             merged.Body,
			EnrichmentSource: merged.EnrichmentSource,
		}
		c.Score = rank.Score(c, pantry)
		items = append(items, c)
	}

	rank.Sort(items)
	items = rank.Exclude(items, req.Exclude)
	if len(items) > req.TopK {
		items = items[:req.TopK]
	}

	return PlanResponse{ID: p.newID(), Query: req.Query, Items: items}, nil
}

func (p *Planner) newID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ulid.MustNew(ulid.Now(), p.entropy).String()
}
