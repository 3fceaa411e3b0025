// Package merge combines an authored recipe with an optional enrichment
// result. The original always wins: enrichment only fills fields the body
// could not supply, and ingredients and steps are decided independently.
package merge

import (
	"strings"

	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// DefaultUnitCues returns the unit-of-measure words that mark a body line
// as an ingredient.
func DefaultUnitCues() []string {
	return []string{
		" g", " kg", " ml", " l ", " tbsp", " tsp", " cup", " oz", " lb",
		"piece", "pinch", "can ", "clove", "slice",
	}
}

// DefaultVerbCues returns the cooking verbs that mark a body line as a
// preparation step.
func DefaultVerbCues() []string {
	return []string{
		"fry", "cook", "bake", "roast", "chop", "slice", "stir", "mix",
		"boil", "simmer", "season", "reduce", "whisk", "drain", "serve",
	}
}

// Merger derives ingredients and steps from authored text, falling back to
// enrichment output per field.
type Merger struct {
	unitCues []string
	verbCues []string
}

// New builds a merger. Nil cue lists select the defaults.
func New(unitCues, verbCues []string) *Merger {
	if unitCues == nil {
		unitCues = DefaultUnitCues()
	}
	if verbCues == nil {
		verbCues = DefaultVerbCues()
	}
	return &Merger{unitCues: unitCues, verbCues: verbCues}
}

// Merge produces a new record from the original and an optional enrichment.
// Body lines containing a unit cue become the ingredients; lines containing
// a verb cue become the steps. Each field falls back to the enrichment only
// when the body yielded nothing for it. A supplied enrichment stamps the
// source and timestamp even when none of its fields were used.
func (m *Merger) Merge(original recipe.Recipe, enriched *recipe.Enrichment) recipe.Recipe {
	out := original

	var lines []string
	for _, ln := range strings.Split(original.Body, "\n") {
		ln = strings.TrimSpace(strings.Trim(ln, "- "))
		if ln != "" {
			lines = append(lines, ln)
		}
	}

	origIngredients := linesWithCue(lines, m.unitCues)
	origSteps := linesWithCue(lines, m.verbCues)

	out.Ingredients = origIngredients
	out.Steps = origSteps
	if enriched != nil {
		if len(out.Ingredients) == 0 {
			out.Ingredients = enriched.Ingredients
		}
		if len(out.Steps) == 0 {
			out.Steps = enriched.Steps
		}
		out.EnrichmentSource = enriched.Source
		out.EnrichedAt = enriched.FetchedAt
	} else if out.EnrichmentSource == "" {
		out.EnrichmentSource = recipe.SourceOriginal
	}
	return out
}

func linesWithCue(lines, cues []string) []string {
	var out []string
	for _, ln := range lines {
		lower := strings.ToLower(ln)
		for _, c := range cues {
			if strings.Contains(lower, c) {
				out = append(out, ln)
				break
			}
		}
	}
	return out
}
