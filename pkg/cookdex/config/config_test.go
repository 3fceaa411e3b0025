package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Enrichment.Enabled {
		t.Error("enrichment must be off by default")
	}
	if cfg.Enrichment.CacheBackend != "file" {
		t.Errorf("CacheBackend = %q, want file", cfg.Enrichment.CacheBackend)
	}
	if cfg.Search.TopK != 5 || cfg.Search.PrefilterLimit != 12 {
		t.Errorf("search defaults = %+v", cfg.Search)
	}
	if len(cfg.Heuristics.CompletenessHints) == 0 {
		t.Error("default cue lists must be populated")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Providers.Model.Model != Default().Providers.Model.Model {
		t.Error("empty path must return the defaults")
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
enrichment:
  enabled: true
  cache_backend: sqlite
  cache_path: /tmp/cache.db
search:
  top_k: 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Enrichment.Enabled || cfg.Enrichment.CacheBackend != "sqlite" {
		t.Errorf("enrichment = %+v", cfg.Enrichment)
	}
	if cfg.Search.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.Search.TopK)
	}
	// Untouched sections keep their defaults.
	if cfg.Search.PrefilterLimit != 12 {
		t.Errorf("PrefilterLimit = %d, want default 12", cfg.Search.PrefilterLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing explicit config file must fail")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Enrichment.CacheBackend = "redis"
	err := cfg.Validate()
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}

	cfg = Default()
	cfg.Providers.Model.Backend = "cohere"
	if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}

	cfg = Default()
	cfg.Search.TopK = -1
	if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
