package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cookdex/cookdex/pkg/cookdex/rank"
)

// substitutions is a small kitchen knowledge base: common ingredients and
// workable stand-ins.
var substitutions = map[string][]string{
	"feta":       {"goat cheese", "halloumi", "salted ricotta", "seasoned tofu"},
	"milk":       {"oat milk", "almond milk", "soy milk", "thinned cream"},
	"cream":      {"creme fraiche", "sour cream", "milk with butter", "coconut milk"},
	"egg":        {"ground flaxseed in water", "applesauce", "mashed banana (sweet)"},
	"butter":     {"oil with a little margarine", "ghee", "coconut oil (sweet)"},
	"onion":      {"spring onion", "shallot", "leek"},
	"garlic":     {"garlic powder", "wild garlic", "asafoetida (sparingly)"},
	"fish sauce": {"soy sauce with a dab of anchovy paste", "miso thinned with water"},
}

// Substitute suggests stand-ins for each missing or excluded ingredient.
// Unknown ingredients get generic flavor-balancing advice.
func Substitute(missing []string) map[string][]string {
	ideas := make(map[string][]string, len(missing))
	for _, miss := range missing {
		m := strings.ToLower(strings.TrimSpace(miss))
		if m == "" {
			continue
		}
		found := ""
		for key := range substitutions {
			if strings.Contains(m, key) {
				found = key
				break
			}
		}
		if found != "" {
			ideas[found] = substitutions[found]
		} else {
			ideas[m] = []string{
				"a similar profile via paprika or umami",
				"balance with extra salt or acid",
			}
		}
	}
	return ideas
}

// quantityRx matches a number with an optional unit: "200g", "200 g",
// "1.5 tbsp", "1,5tbsp".
var quantityRx = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)(\s?(?:g|kg|ml|l|tbsp|tsp|cups?|pieces?|oz|lb)?)`)

// Scale rewrites quantity mentions in ingredient lines by the ratio of
// target to source servings. Unknown source servings scale by 1. This is
// a rough string substitution, not unit normalization.
func Scale(ingredients []string, personsFrom, personsTo int) []string {
	if len(ingredients) == 0 {
		return nil
	}
	if personsFrom <= 0 {
		personsFrom = personsTo
	}
	factor := float64(personsTo) / float64(personsFrom)

	out := make([]string, len(ingredients))
	for i, line := range ingredients {
		out[i] = quantityRx.ReplaceAllStringFunc(line, func(match string) string {
			sub := quantityRx.FindStringSubmatch(match)
			val, err := strconv.ParseFloat(strings.ReplaceAll(sub[1], ",", "."), 64)
			if err != nil {
				return match
			}
			return formatAmount(val*factor) + sub[2]
		})
	}
	return out
}

func formatAmount(v float64) string {
	rounded := float64(int(v + 0.5))
	if diff := v - rounded; diff < 1e-6 && diff > -1e-6 {
		return strconv.Itoa(int(rounded))
	}
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// ShoppingList consolidates ingredients across recipes. Simple merge with
// case-insensitive dedupe; no unit normalization.
func ShoppingList(recipes []rank.Candidate) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			t := strings.TrimSpace(ing)
			if t == "" {
				continue
			}
			key := strings.ToLower(t)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
