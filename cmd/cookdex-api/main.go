package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/cookdex/cookdex/internal/llm"
	"github.com/cookdex/cookdex/internal/logger"
	"github.com/cookdex/cookdex/internal/notion"
	"github.com/cookdex/cookdex/internal/web"
	"github.com/cookdex/cookdex/pkg/cookdex"
	"github.com/cookdex/cookdex/pkg/cookdex/agent"
	"github.com/cookdex/cookdex/pkg/cookdex/assess"
	"github.com/cookdex/cookdex/pkg/cookdex/cache"
	"github.com/cookdex/cookdex/pkg/cookdex/cache/filecache"
	"github.com/cookdex/cookdex/pkg/cookdex/cache/memcache"
	"github.com/cookdex/cookdex/pkg/cookdex/cache/sqlitecache"
	"github.com/cookdex/cookdex/pkg/cookdex/config"
	"github.com/cookdex/cookdex/pkg/cookdex/enrich"
	"github.com/cookdex/cookdex/pkg/cookdex/merge"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		addr       = flag.String("addr", ":8080", "Listen address")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	appLog := logger.New(cfg.Logging.Level)
	ctx := context.Background()

	source := &notion.Client{
		Token:  os.Getenv("NOTION_TOKEN"),
		PageID: os.Getenv("NOTION_RECIPES_ID"),
	}

	store, err := openCache(ctx, cfg.Enrichment)
	if err != nil {
		log.Fatal("Failed to open enrichment cache:", err)
	}
	if store != nil {
		defer store.Close()
	}

	enricher := enrich.NewOrchestrator(enrich.Options{
		Enabled:        cfg.Enrichment.Enabled,
		Cache:          store,
		Providers:      buildProviders(ctx, cfg.Providers, appLog),
		AttemptTimeout: time.Duration(cfg.Enrichment.TimeoutSeconds) * time.Second,
		Logger:         appLog,
	})

	planner := cookdex.New(cookdex.Options{
		Source:    source,
		Assessor:  assess.New(cfg.Heuristics.CompletenessHints),
		Enricher:  enricher,
		Merger:    merge.New(cfg.Heuristics.UnitCues, cfg.Heuristics.VerbCues),
		Prefilter: cfg.Search.PrefilterLimit,
	})

	chatAgent := agent.New(agent.Options{
		Planner:   planner,
		Stopwords: cfg.Heuristics.Stopwords,
		Phraser:   buildPhraser(cfg.Providers.Model),
	})

	server := web.NewServer(planner, chatAgent, appLog)
	if err := server.Run(*addr); err != nil {
		log.Fatal("Server stopped:", err)
	}
}

func openCache(ctx context.Context, cfg config.EnrichmentConfig) (cache.Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.CacheBackend {
	case "memory":
		return memcache.New(), nil
	case "sqlite":
		return sqlitecache.Open(ctx, cfg.CachePath)
	default:
		return filecache.Open(cfg.CachePath), nil
	}
}

// buildProviders assembles the chain in lookup order: the structured
// recipe API first, then web search, then a language model as last
// resort. Providers whose credentials are absent are skipped.
func buildProviders(ctx context.Context, cfg config.ProvidersConfig, appLog *logger.Logger) []enrich.Provider {
	var chain []enrich.Provider

	if key := os.Getenv(cfg.Spoonacular.APIKeyEnv); key != "" {
		chain = append(chain, enrich.NewSpoonacular(enrich.SpoonacularConfig{
			APIKey:       key,
			BaseURL:      cfg.Spoonacular.BaseURL,
			RateLimitRPS: cfg.Spoonacular.RateLimitRPS,
			Synonyms:     cfg.Spoonacular.Synonyms,
			Logger:       appLog,
		}))
	}

	if key := os.Getenv(cfg.WebSearch.APIKeyEnv); key != "" {
		chain = append(chain, enrich.NewWebSearch(key))
	}

	modelKey := os.Getenv(cfg.Model.APIKeyEnv)
	switch cfg.Model.Backend {
	case "gemini":
		gem, err := enrich.NewGemini(ctx, enrich.GeminiConfig{
			APIKey: modelKey,
			Model:  cfg.Model.Model,
		})
		if err != nil {
			appLog.Warn("gemini provider disabled", "error", err)
		} else {
			chain = append(chain, gem)
		}
	default:
		if modelKey != "" {
			chain = append(chain, enrich.NewChatModel(enrich.ChatModelConfig{
				BaseURL: cfg.Model.BaseURL,
				APIKey:  modelKey,
				Model:   cfg.Model.Model,
			}))
		}
	}

	return chain
}

func buildPhraser(cfg config.ModelConfig) agent.Phraser {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" || cfg.Backend != "openai" {
		return nil
	}
	return &llm.Client{
		BaseURL: cfg.BaseURL,
		APIKey:  key,
		Model:   cfg.Model,
	}
}
