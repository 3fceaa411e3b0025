package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/cookdex/cookdex/internal/logger"
	"github.com/cookdex/cookdex/internal/notion"
	"github.com/cookdex/cookdex/pkg/cookdex"
	"github.com/cookdex/cookdex/pkg/cookdex/assess"
	"github.com/cookdex/cookdex/pkg/cookdex/cache"
	"github.com/cookdex/cookdex/pkg/cookdex/cache/filecache"
	"github.com/cookdex/cookdex/pkg/cookdex/cache/memcache"
	"github.com/cookdex/cookdex/pkg/cookdex/cache/sqlitecache"
	"github.com/cookdex/cookdex/pkg/cookdex/config"
	"github.com/cookdex/cookdex/pkg/cookdex/enrich"
	"github.com/cookdex/cookdex/pkg/cookdex/merge"
	"github.com/cookdex/cookdex/pkg/cookdex/rank"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		pantry     = flag.String("pantry", "", "Pantry query; empty starts interactive mode")
		exclude    = flag.String("exclude", "", "Comma-separated exclusion terms")
		topK       = flag.Int("top", 0, "Result count (0 = config default)")
		loose      = flag.Bool("loose", false, "Match any pantry token instead of all")
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

	planner := cookdex.New(cookdex.Options{
		Source:   source,
		Assessor: assess.New(cfg.Heuristics.CompletenessHints),
		Enricher: enrich.NewOrchestrator(enrich.Options{
			Enabled:        cfg.Enrichment.Enabled,
			Cache:          store,
			Providers:      buildProviders(ctx, cfg.Providers, appLog),
			AttemptTimeout: time.Duration(cfg.Enrichment.TimeoutSeconds) * time.Second,
			Logger:         appLog,
		}),
		Merger:    merge.New(cfg.Heuristics.UnitCues, cfg.Heuristics.VerbCues),
		Prefilter: cfg.Search.PrefilterLimit,
	})

	if *topK <= 0 {
		*topK = cfg.Search.TopK
	}

	req := cookdex.PlanRequest{
		Exclude: splitTerms(*exclude),
		TopK:    *topK,
		Strict:  !*loose,
	}

	if *pantry != "" {
		req.Query = *pantry
		runPlan(ctx, planner, req)
		return
	}

	// Interactive mode: one query per line until EOF.
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Enter pantry ingredients (Ctrl-D to quit):")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		req.Query = line
		runPlan(ctx, planner, req)
	}
}

func runPlan(ctx context.Context, planner *cookdex.Planner, req cookdex.PlanRequest) {
	resp, err := planner.Plan(ctx, req)
	if err != nil {
		log.Fatal("Planning failed:", err)
	}
	if len(resp.Items) == 0 {
		fmt.Println("No matching recipes.")
		return
	}
	printTable(resp.Items)
}

func printTable(items []rank.Candidate) {
	titleWidth := len("Recipe")
	for _, it := range items {
		if w := runewidth.StringWidth(it.Title); w > titleWidth {
			titleWidth = w
		}
	}

	fmt.Printf("%s  %5s  %-8s  %s\n", runewidth.FillRight("Recipe", titleWidth), "Score", "Source", "Ingredients")
	for _, it := range items {
		fmt.Printf("%s  %5d  %-8s  %d\n",
			runewidth.FillRight(it.Title, titleWidth),
			it.Score,
			shortSource(it.EnrichmentSource),
			len(it.Ingredients))
	}
}

func shortSource(source string) string {
	if i := strings.Index(source, ":"); i > 0 {
		return source[:i]
	}
	return source
}

func splitTerms(s string) []string {
	if s == "" {
		return nil
	}
	var terms []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
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
