package agent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cookdex/cookdex/pkg/cookdex/search"
)

var (
	personsRx = regexp.MustCompile(`for\s+(\d+)\s+(?:people|persons?|servings?|portions?)`)
	excludeRx = regexp.MustCompile(`(?:without|no)\s+([a-zA-Z\- ]+)`)
)

// DefaultStopwords returns message words that never describe food.
func DefaultStopwords() []string {
	return []string{
		"i", "ive", "have", "got", "and", "or", "with", "without", "no",
		"please", "what", "can", "cook", "make", "eat", "dish", "recipe",
		"meal", "for", "people", "person", "servings", "serving",
		"portions", "portion", "quick", "today", "tonight", "evening",
		"lunch", "dinner", "plan", "week", "days", "some", "the",
	}
}

// Entities is what the agent extracts from a free-text message.
type Entities struct {
	// Pantry lists the ingredient-looking tokens of the message.
	Pantry []string
	// Exclude lists tokens following "without"/"no".
	Exclude []string
	// Persons is the requested serving count; 0 when absent.
	Persons int
}

// ExtractEntities pulls pantry tokens, exclusions and a serving count out
// of the message. Token filtering is deliberately rough: stopwords and
// short or numeric tokens are dropped, everything else counts as pantry.
func ExtractEntities(message string, stopwords []string) Entities {
	if stopwords == nil {
		stopwords = DefaultStopwords()
	}
	msg := strings.ToLower(message)

	var ents Entities
	if m := personsRx.FindStringSubmatch(msg); m != nil {
		ents.Persons, _ = strconv.Atoi(m[1])
	}

	for _, m := range excludeRx.FindAllStringSubmatch(msg, -1) {
		for _, w := range search.Tokenize(m[1]) {
			ents.Exclude = append(ents.Exclude, w)
		}
	}
	ents.Exclude = search.Dedup(ents.Exclude)

	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[w] = struct{}{}
	}
	excluded := make(map[string]struct{}, len(ents.Exclude))
	for _, w := range ents.Exclude {
		excluded[w] = struct{}{}
	}

	var pantry []string
	for _, w := range search.Tokenize(msg) {
		if len(w) < 3 || isAllDigits(w) {
			continue
		}
		if _, ok := stops[w]; ok {
			continue
		}
		if _, ok := excluded[w]; ok {
			continue
		}
		pantry = append(pantry, w)
	}
	ents.Pantry = search.Dedup(pantry)
	return ents
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Intents the router can produce.
const (
	IntentPlan         = "plan"
	IntentSubstitute   = "substitute"
	IntentScale        = "scale"
	IntentShoppingList = "shopping_list"
)

// RouteIntent picks the intent for a message. Keyword matching, checked
// most-specific first; planning over the pantry is the default.
func RouteIntent(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "shopping list") || strings.Contains(m, "grocery list"):
		return IntentShoppingList
	case strings.Contains(m, "substitute") || strings.Contains(m, "replace") ||
		strings.Contains(m, "alternative") || strings.Contains(m, "without "):
		return IntentSubstitute
	case personsRx.MatchString(m):
		return IntentScale
	default:
		return IntentPlan
	}
}
