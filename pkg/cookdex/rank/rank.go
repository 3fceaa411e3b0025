// Package rank re-scores merged candidates against the user's pantry and
// applies the exclusion filter. Scoring favors ingredient hits over body
// hits; exclusion runs after sorting so removed items never shift the rank
// of survivors.
package rank

import (
	"sort"
	"strings"
)

// Candidate is the response item shared verbatim with the presentation
// layers (API responses, UI cards).
type Candidate struct {
	Title            string   `json:"title"`
	Ingredients      []string `json:"ingredients"`
	Steps            []string `json:"steps"`
	Body             string   `json:"body,omitempty"`
	EnrichmentSource string   `json:"enrichment_source"`
	Score            int      `json:"score"`
}

// Score computes the pantry score: 3 per token found in the joined
// ingredients, 1 per token found in the body, plus a flat 2 when at least
// two tokens landed in the ingredients.
func Score(c Candidate, pantry []string) int {
	ingredients := strings.ToLower(strings.Join(c.Ingredients, " "))
	body := strings.ToLower(c.Body)

	hitsIng, hitsBody := 0, 0
	for _, t := range pantry {
		if strings.Contains(ingredients, t) {
			hitsIng++
		}
		if strings.Contains(body, t) {
			hitsBody++
		}
	}

	score := hitsIng*3 + hitsBody
	if hitsIng >= 2 {
		score += 2
	}
	return score
}

// Sort orders candidates by descending score, stable on ties.
func Sort(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// Exclude drops every candidate whose title or joined ingredients contain
// one of the terms as a case-insensitive substring. Blank terms are
// ignored.
func Exclude(candidates []Candidate, terms []string) []Candidate {
	var cleaned []string
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return candidates
	}

	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		haystack := strings.ToLower(c.Title) + " " + strings.ToLower(strings.Join(c.Ingredients, " "))
		keep := true
		for _, t := range cleaned {
			if strings.Contains(haystack, t) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}
