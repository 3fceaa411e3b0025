// Package config loads the planning service configuration. Heuristic cue
// lists are runtime data, not code: tests and non-English catalogs can
// substitute their own.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cookdex/cookdex/pkg/cookdex/assess"
	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
	"github.com/cookdex/cookdex/pkg/cookdex/merge"
)

// Config is the full service configuration.
type Config struct {
	Heuristics HeuristicsConfig `yaml:"heuristics"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Providers  ProvidersConfig  `yaml:"providers"`
	Search     SearchConfig     `yaml:"search"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// HeuristicsConfig holds the lexical cue lists. Empty lists select the
// built-in defaults.
type HeuristicsConfig struct {
	CompletenessHints []string `yaml:"completeness_hints"`
	UnitCues          []string `yaml:"unit_cues"`
	VerbCues          []string `yaml:"verb_cues"`
	Stopwords         []string `yaml:"stopwords"`
}

// EnrichmentConfig gates and shapes external augmentation.
type EnrichmentConfig struct {
	Enabled        bool   `yaml:"enabled"`
	CacheBackend   string `yaml:"cache_backend"` // memory | file | sqlite
	CachePath      string `yaml:"cache_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ProvidersConfig configures the enrichment provider chain.
type ProvidersConfig struct {
	Spoonacular SpoonacularConfig `yaml:"spoonacular"`
	WebSearch   WebSearchConfig   `yaml:"websearch"`
	Model       ModelConfig       `yaml:"model"`
}

// SpoonacularConfig configures the structured-recipe-API provider.
// Synonyms maps lowercased dish names to the spelling the API indexes.
type SpoonacularConfig struct {
	APIKeyEnv    string            `yaml:"api_key_env"`
	BaseURL      string            `yaml:"base_url"`
	RateLimitRPS float64           `yaml:"rate_limit_rps"`
	Synonyms     map[string]string `yaml:"synonyms"`
}

// WebSearchConfig configures the placeholder web-search provider.
type WebSearchConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
}

// ModelConfig configures the generic-language-model provider.
type ModelConfig struct {
	Backend   string `yaml:"backend"` // openai | gemini
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// SearchConfig holds retrieval knobs.
type SearchConfig struct {
	// PrefilterLimit is how many candidates the retriever hands to
	// enrichment and re-ranking.
	PrefilterLimit int `yaml:"prefilter_limit"`
	TopK           int `yaml:"top_k"`
}

// LoggingConfig configures the service logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Heuristics: HeuristicsConfig{
			CompletenessHints: assess.DefaultHints(),
			UnitCues:          merge.DefaultUnitCues(),
			VerbCues:          merge.DefaultVerbCues(),
		},
		Enrichment: EnrichmentConfig{
			Enabled:        false,
			CacheBackend:   "file",
			CachePath:      "enrichment_cache.json",
			TimeoutSeconds: 30,
		},
		Providers: ProvidersConfig{
			Spoonacular: SpoonacularConfig{
				APIKeyEnv:    "SPOONACULAR_API_KEY",
				RateLimitRPS: 1,
			},
			WebSearch: WebSearchConfig{
				APIKeyEnv: "WEB_SEARCH_API_KEY",
			},
			Model: ModelConfig{
				Backend:   "openai",
				BaseURL:   "https://api.openai.com/v1",
				Model:     "gpt-4o-mini",
				APIKeyEnv: "OPENAI_API_KEY",
			},
		},
		Search: SearchConfig{
			PrefilterLimit: 12,
			TopK:           5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks fields that would otherwise fail at an awkward moment.
func (c Config) Validate() error {
	switch c.Enrichment.CacheBackend {
	case "", "memory", "file", "sqlite":
	default:
		return fmt.Errorf("%w: cache_backend must be memory, file or sqlite", internalerr.ErrInvalidConfig)
	}
	switch c.Providers.Model.Backend {
	case "", "openai", "gemini":
	default:
		return fmt.Errorf("%w: model backend must be openai or gemini", internalerr.ErrInvalidConfig)
	}
	if c.Search.PrefilterLimit < 0 || c.Search.TopK < 0 {
		return fmt.Errorf("%w: search limits must be non-negative", internalerr.ErrInvalidConfig)
	}
	return nil
}
