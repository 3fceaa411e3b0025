// Package agent is a lightweight intent-routing layer over the planner:
// no language model required for routing, only for optional phrasing of
// the final answer.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/cookdex/cookdex/pkg/cookdex"
	"github.com/cookdex/cookdex/pkg/cookdex/rank"
)

// Phraser turns plan results into a conversational reply. Optional; when
// absent the agent falls back to plain-text formatting.
type Phraser interface {
	FormatPlan(ctx context.Context, message string, items []rank.Candidate) (string, error)
}

// Agent routes free-text messages to planning tools.
type Agent struct {
	planner   *cookdex.Planner
	stopwords []string
	phraser   Phraser
}

// Options configures an Agent.
type Options struct {
	Planner   *cookdex.Planner
	Stopwords []string // nil selects the defaults
	Phraser   Phraser
}

// New creates an Agent.
func New(opts Options) *Agent {
	return &Agent{
		planner:   opts.Planner,
		stopwords: opts.Stopwords,
		phraser:   opts.Phraser,
	}
}

// Reply is the structured answer for one message.
type Reply struct {
	Intent            string              `json:"intent"`
	Text              string              `json:"reply"`
	Results           []rank.Candidate    `json:"results,omitempty"`
	Suggestions       []string            `json:"suggestions,omitempty"`
	ShoppingList      []string            `json:"shopping_list,omitempty"`
	Substitutions     map[string][]string `json:"substitutions,omitempty"`
	ScaledIngredients []string            `json:"ingredients_scaled,omitempty"`
}

// Handle routes the message and runs the matching tool.
func (a *Agent) Handle(ctx context.Context, message string) (Reply, error) {
	intent := RouteIntent(message)
	ents := ExtractEntities(message, a.stopwords)

	switch intent {
	case IntentSubstitute:
		return a.handleSubstitute(ctx, ents)
	case IntentScale:
		return a.handleScale(ctx, ents)
	case IntentShoppingList:
		return a.handleShoppingList(ctx, ents)
	default:
		return a.handlePlan(ctx, message, ents)
	}
}

func (a *Agent) plan(ctx context.Context, ents Entities, topK int, strict bool) (cookdex.PlanResponse, error) {
	query := strings.Join(ents.Pantry, " ")
	return a.planner.Plan(ctx, cookdex.PlanRequest{
		Query:   query,
		Exclude: ents.Exclude,
		TopK:    topK,
		Strict:  strict,
	})
}

func (a *Agent) handlePlan(ctx context.Context, message string, ents Entities) (Reply, error) {
	// One known ingredient is too thin for a strict match.
	strict := len(ents.Pantry) >= 2
	query := strings.Join(ents.Pantry, " ")
	if query == "" {
		query = message
	}

	resp, err := a.planner.Plan(ctx, cookdex.PlanRequest{
		Query:   query,
		Exclude: ents.Exclude,
		TopK:    5,
		Strict:  strict,
	})
	if err != nil {
		return Reply{}, err
	}

	text := ""
	if a.phraser != nil && len(resp.Items) > 0 {
		if phrased, err := a.phraser.FormatPlan(ctx, message, resp.Items); err == nil {
			text = phrased
		}
	}
	if text == "" {
		text = FormatPlan(resp.Items, query)
	}

	var suggestions []string
	if len(resp.Items) > 0 {
		suggestions = []string{"Make a shopping list", "Scale for 4 people", "Without feta"}
		if resp.Items[0].Score < 3 {
			suggestions = append(suggestions, "Name another ingredient")
		}
	}

	return Reply{
		Intent:      IntentPlan,
		Text:        text,
		Results:     resp.Items,
		Suggestions: suggestions,
	}, nil
}

func (a *Agent) handleSubstitute(ctx context.Context, ents Entities) (Reply, error) {
	terms := ents.Exclude
	if len(terms) == 0 {
		terms = ents.Pantry
	}
	subs := Substitute(terms)

	lines := []string{"Substitution ideas:"}
	for k, vals := range subs {
		lines = append(lines, fmt.Sprintf("- %s: %s", k, strings.Join(vals, ", ")))
	}
	return Reply{
		Intent:        IntentSubstitute,
		Text:          strings.Join(lines, "\n"),
		Substitutions: subs,
	}, nil
}

func (a *Agent) handleScale(ctx context.Context, ents Entities) (Reply, error) {
	resp, err := a.plan(ctx, ents, 1, false)
	if err != nil {
		return Reply{}, err
	}
	if len(resp.Items) == 0 {
		return Reply{Intent: IntentScale, Text: "No recipes found to scale."}, nil
	}

	persons := ents.Persons
	if persons <= 0 {
		persons = 2
	}
	top := resp.Items[0]
	scaled := Scale(top.Ingredients, 0, persons)

	text := fmt.Sprintf("Scaled ingredients for %s (about %d people):\n- %s",
		top.Title, persons, strings.Join(preview(scaled, 20), "\n- "))
	return Reply{
		Intent:            IntentScale,
		Text:              text,
		ScaledIngredients: scaled,
	}, nil
}

func (a *Agent) handleShoppingList(ctx context.Context, ents Entities) (Reply, error) {
	resp, err := a.plan(ctx, ents, 3, false)
	if err != nil {
		return Reply{}, err
	}

	list := ShoppingList(resp.Items)
	text := "Shopping list (consolidated):\n- " + strings.Join(preview(list, 40), "\n- ")
	if len(list) == 0 {
		text = "Nothing to put on the list yet."
	}
	return Reply{
		Intent:       IntentShoppingList,
		Text:         text,
		Results:      resp.Items,
		ShoppingList: list,
	}, nil
}

// FormatPlan renders plan results as plain text.
func FormatPlan(results []rank.Candidate, query string) string {
	if len(results) == 0 {
		return "No matching recipes for: " + query
	}
	lines := []string{fmt.Sprintf("Best suggestions for: %s\n", query)}
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("%d. %s  (source: %s, score: %d)", i+1, r.Title, r.EnrichmentSource, r.Score))
		if len(r.Ingredients) > 0 {
			suffix := ""
			if len(r.Ingredients) > 6 {
				suffix = " ..."
			}
			lines = append(lines, "   Ingredients: "+strings.Join(preview(r.Ingredients, 6), ", ")+suffix)
		} else if r.Body != "" {
			for _, ln := range nonBlankLines(r.Body, 2) {
				lines = append(lines, "   - "+ln)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func preview(xs []string, n int) []string {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

func nonBlankLines(body string, n int) []string {
	var out []string
	for _, ln := range strings.Split(body, "\n") {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		out = append(out, ln)
		if len(out) == n {
			break
		}
	}
	return out
}
