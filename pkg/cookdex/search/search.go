// Package search is the token-overlap pre-filter over the recipe catalog.
// It is pure and in-memory; ingredient-aware re-scoring happens afterwards
// in the rank package.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// Result is one pre-filtered candidate.
type Result struct {
	Title string
	Body  string
	Score int
}

// Tokenize splits text into lowercase runs of Unicode letters and digits,
// dropping tokens of length one.
func Tokenize(text string) []string {
	var tokens []string
	var current []rune
	flush := func() {
		if len(current) > 1 {
			tokens = append(tokens, string(current))
		}
		current = current[:0]
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current = append(current, unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// Dedup removes duplicates keeping first occurrences.
func Dedup(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Search filters and scores the catalog against a query.
//
// A query token hits a record when it is a substring of the lowercased
// title or body. With requireAll, records missing any token are dropped.
// Score is hits*10 plus 2 per hit that landed in the title; zero scores are
// dropped. The result is sorted by descending score, stable on ties so the
// catalog order survives, then truncated to limit.
func Search(query string, catalog []recipe.Recipe, requireAll bool, limit int) []Result {
	want := Tokenize(query)
	if len(want) == 0 {
		return nil
	}

	var out []Result
	for _, r := range catalog {
		title := strings.ToLower(r.Title)
		body := strings.ToLower(r.Body)

		hits, titleHits := 0, 0
		for _, w := range want {
			inTitle := strings.Contains(title, w)
			if inTitle || strings.Contains(body, w) {
				hits++
				if inTitle {
					titleHits++
				}
			}
		}

		if requireAll && hits < len(want) {
			continue
		}
		score := hits*10 + titleHits*2
		if score > 0 {
			out = append(out, Result{Title: r.Title, Body: r.Body, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
