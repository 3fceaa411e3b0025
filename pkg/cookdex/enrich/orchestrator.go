package enrich

import (
	"context"
	"sync"
	"time"

	"github.com/cookdex/cookdex/internal/logger"
	"github.com/cookdex/cookdex/pkg/cookdex/cache"
	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

const defaultAttemptTimeout = 30 * time.Second

// Options configures an Orchestrator.
type Options struct {
	// Enabled is the enrichment feature flag. When false, Enrich always
	// reports no result without touching cache or providers.
	Enabled bool

	Cache     cache.Cache
	Providers []Provider

	// AttemptTimeout bounds each provider attempt. A timed-out attempt is
	// treated as a provider failure.
	AttemptTimeout time.Duration

	Logger *logger.Logger
}

// Orchestrator runs the provider chain with caching. Providers are tried
// in their configured order; the first success is cached and returned.
type Orchestrator struct {
	enabled   bool
	cache     cache.Cache
	providers []Provider
	timeout   time.Duration
	log       *logger.Logger

	// exhausted remembers titles whose full provider chain already came up
	// empty, so a title triggers at most one lookup sequence per process.
	mu        sync.Mutex
	exhausted map[string]struct{}
}

// NewOrchestrator builds an orchestrator from options.
func NewOrchestrator(opts Options) *Orchestrator {
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = defaultAttemptTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return &Orchestrator{
		enabled:   opts.Enabled,
		cache:     opts.Cache,
		providers: opts.Providers,
		timeout:   opts.AttemptTimeout,
		log:       opts.Logger,
		exhausted: make(map[string]struct{}),
	}
}

// Enrich looks up enrichment for a title. It returns nil when enrichment
// is disabled, the title is blank, or every provider came up empty.
// Success from any provider is the only path that writes the cache.
func (o *Orchestrator) Enrich(ctx context.Context, title string) *recipe.Enrichment {
	if !o.enabled {
		return nil
	}
	key := recipe.NormalizeTitle(title)
	if key == "" {
		return nil
	}

	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			o.log.Warn("cache read failed, treating as miss", "key", key, "error", err)
		} else if ok {
			o.log.Debug("enrichment cache hit", "title", title)
			return &cached
		}
	}

	o.mu.Lock()
	_, done := o.exhausted[key]
	o.mu.Unlock()
	if done {
		return nil
	}

	for _, p := range o.providers {
		attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
		result, err := p.Attempt(attemptCtx, title)
		cancel()
		if err != nil {
			o.log.Debug("provider failed", "provider", p.Name(), "title", title, "error", err)
			continue
		}
		if result == nil || result.Empty() {
			continue
		}

		if o.cache != nil {
			// A failed write must not lose the result already in hand.
			if err := o.cache.Put(ctx, key, *result); err != nil {
				o.log.Warn("cache write failed", "key", key, "error", err)
			}
		}
		o.log.Info("enrichment succeeded", "provider", p.Name(), "source", result.Source)
		return result
	}

	o.mu.Lock()
	o.exhausted[key] = struct{}{}
	o.mu.Unlock()
	o.log.Debug("no enrichment found", "title", title)
	return nil
}
