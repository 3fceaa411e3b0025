package merge

import (
	"reflect"
	"testing"
	"time"

	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

func TestMergeDerivesFieldsFromBody(t *testing.T) {
	m := New(nil, nil)
	r := recipe.Recipe{
		Title: "Goulash",
		Body:  "- 500 g beef\n- 2 onions\nFry the onions, then simmer.",
	}

	got := m.Merge(r, nil)

	if want := []string{"500 g beef"}; !reflect.DeepEqual(got.Ingredients, want) {
		t.Errorf("Ingredients = %v, want %v", got.Ingredients, want)
	}
	if want := []string{"Fry the onions, then simmer."}; !reflect.DeepEqual(got.Steps, want) {
		t.Errorf("Steps = %v, want %v", got.Steps, want)
	}
	if got.EnrichmentSource != recipe.SourceOriginal {
		t.Errorf("EnrichmentSource = %q, want original", got.EnrichmentSource)
	}
}

func TestMergeOriginalWins(t *testing.T) {
	m := New(nil, nil)
	r := recipe.Recipe{
		Title: "Goulash",
		Body:  "- 500 g beef\nFry everything.",
	}
	enriched := &recipe.Enrichment{
		Ingredients: []string{"1 kg pork"},
		Steps:       []string{"Do something else"},
		Source:      "api:spoonacular:7",
		FetchedAt:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	got := m.Merge(r, enriched)

	if want := []string{"500 g beef"}; !reflect.DeepEqual(got.Ingredients, want) {
		t.Errorf("authored ingredients must win, got %v", got.Ingredients)
	}
	if want := []string{"Fry everything."}; !reflect.DeepEqual(got.Steps, want) {
		t.Errorf("authored steps must win, got %v", got.Steps)
	}
	// Even though nothing was borrowed, the provenance is stamped.
	if got.EnrichmentSource != "api:spoonacular:7" {
		t.Errorf("EnrichmentSource = %q, want api:spoonacular:7", got.EnrichmentSource)
	}
	if !got.EnrichedAt.Equal(enriched.FetchedAt) {
		t.Errorf("EnrichedAt = %v, want %v", got.EnrichedAt, enriched.FetchedAt)
	}
}

func TestMergeFieldsFallBackIndependently(t *testing.T) {
	m := New(nil, nil)
	// Body yields steps but no ingredients.
	r := recipe.Recipe{Title: "Goulash", Body: "Fry the meat."}
	enriched := &recipe.Enrichment{
		Ingredients: []string{"500 g beef"},
		Steps:       []string{"Borrowed step"},
		Source:      "llm:generic",
	}

	got := m.Merge(r, enriched)

	if want := []string{"500 g beef"}; !reflect.DeepEqual(got.Ingredients, want) {
		t.Errorf("Ingredients = %v, want borrowed %v", got.Ingredients, want)
	}
	if want := []string{"Fry the meat."}; !reflect.DeepEqual(got.Steps, want) {
		t.Errorf("Steps = %v, want authored %v", got.Steps, want)
	}
}

func TestMergeStripsListMarkers(t *testing.T) {
	m := New(nil, nil)
	r := recipe.Recipe{Title: "Goulash", Body: "- 2 tbsp oil"}
	got := m.Merge(r, nil)
	if want := []string{"2 tbsp oil"}; !reflect.DeepEqual(got.Ingredients, want) {
		t.Errorf("Ingredients = %v, want %v", got.Ingredients, want)
	}
}

func TestMergeNilEnrichmentKeepsExistingSource(t *testing.T) {
	m := New(nil, nil)
	r := recipe.Recipe{Title: "Goulash", EnrichmentSource: "api:spoonacular:7"}
	got := m.Merge(r, nil)
	if got.EnrichmentSource != "api:spoonacular:7" {
		t.Errorf("EnrichmentSource = %q, want unchanged", got.EnrichmentSource)
	}
}

func TestMergeIdempotent(t *testing.T) {
	m := New(nil, nil)
	r := recipe.Recipe{
		Title: "Goulash",
		Body:  "- 500 g beef\nFry everything.",
	}
	once := m.Merge(r, nil)
	twice := m.Merge(once, nil)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge is not idempotent:\nonce  %+v\ntwice %+v", once, twice)
	}
}
