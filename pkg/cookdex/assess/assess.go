// Package assess decides whether a parsed recipe carries enough authored
// content or needs external enrichment. The check is a cheap lexical
// heuristic; false positives and negatives are accepted.
package assess

import (
	"strings"

	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// minBodyLines is the line count at which a body counts as complete even
// without any cooking cue.
const minBodyLines = 3

// DefaultHints returns the built-in cooking-domain cues: quantity units,
// cooking verbs and appliance nouns. Matched as substrings of the
// lowercased body.
func DefaultHints() []string {
	return []string{
		"ingredient", " g ", " ml", " tbsp", " tsp", " oz", " cup",
		"cook", "fry", "bake", "roast", "simmer", "boil",
		"min", "oven", "pan", "pot", "skillet",
		"water", "oil", "broth", "stock",
		"dice", "chop", "mix", "stir", "reduce", "season",
	}
}

// Assessment is the verdict for one recipe.
type Assessment struct {
	Complete bool
	Reason   string
}

// Assessor applies the completeness heuristic with a configurable cue set.
type Assessor struct {
	hints []string
}

// New builds an assessor. A nil hint list selects the defaults; an empty
// non-nil list disables cue matching entirely.
func New(hints []string) *Assessor {
	if hints == nil {
		hints = DefaultHints()
	}
	return &Assessor{hints: hints}
}

// Assess reports whether the record is complete. A record without a title
// is never complete. Otherwise three non-blank body lines or any cooking
// cue suffice.
func (a *Assessor) Assess(r recipe.Recipe) Assessment {
	if strings.TrimSpace(r.Title) == "" {
		return Assessment{Complete: false, Reason: "no title"}
	}

	body := strings.TrimSpace(r.Body)
	lines := 0
	for _, ln := range strings.Split(body, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines++
		}
	}

	lower := strings.ToLower(body)
	hasCue := false
	for _, h := range a.hints {
		if strings.Contains(lower, h) {
			hasCue = true
			break
		}
	}

	if lines >= minBodyLines || hasCue {
		return Assessment{Complete: true, Reason: "ok"}
	}
	return Assessment{Complete: false, Reason: "too little structure"}
}
