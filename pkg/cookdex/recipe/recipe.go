package recipe

import (
	"strings"
	"time"
)

// SourceOriginal marks a record whose fields come entirely from the
// authored document.
const SourceOriginal = "original"

// Recipe is the durable unit: reconstructed by the parser, completed by
// enrichment and merge. Ingredients and Steps are empty until merge runs.
type Recipe struct {
	Title string
	Body  string

	Ingredients []string
	Steps       []string

	// "original", "api:<provider>:<id>" or "llm:generic".
	EnrichmentSource string
	EnrichedAt       time.Time
}

// Enrichment is the output of exactly one provider lookup. It is only
// persisted as a cache entry keyed by the normalized title.
type Enrichment struct {
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Source      string    `json:"source"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Empty reports whether the lookup produced neither ingredients nor steps.
func (e Enrichment) Empty() bool {
	return len(e.Ingredients) == 0 && len(e.Steps) == 0
}

// NormalizeTitle produces the cache key for a title: case-folded, with
// interior whitespace collapsed to single spaces.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
