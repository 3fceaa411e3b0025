package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/cookdex/cookdex/internal/logger"
	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

const (
	spoonacularBaseURL = "https://api.spoonacular.com"

	// maxFallbackSteps caps steps recovered from the free-text
	// instructions field.
	maxFallbackSteps = 12
)

// DefaultSynonyms maps known dish names to the English spelling the
// recipe API indexes.
func DefaultSynonyms() map[string]string {
	return map[string]string{
		"gulasch":       "goulash",
		"zwiebelsuppe":  "onion soup",
		"pfannkuchen":   "pancakes",
		"käsespätzle":   "cheese spaetzle",
		"kase spaetzle": "cheese spaetzle",
	}
}

var transliterator = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

// SpoonacularConfig configures the structured-recipe-API provider.
type SpoonacularConfig struct {
	APIKey  string
	BaseURL string

	// RateLimitRPS is a global cap on API calls. <=0 disables limiting.
	RateLimitRPS float64

	// Synonyms overrides the dish-name translation table. Nil selects the
	// defaults.
	Synonyms map[string]string

	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Spoonacular looks recipes up in the Spoonacular structured API: search
// by title for an id, then fetch structured details.
type Spoonacular struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	synonyms map[string]string
	log      *logger.Logger
}

// NewSpoonacular builds the provider.
func NewSpoonacular(cfg SpoonacularConfig) *Spoonacular {
	if cfg.BaseURL == "" {
		cfg.BaseURL = spoonacularBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Synonyms == nil {
		cfg.Synonyms = DefaultSynonyms()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)
	}
	return &Spoonacular{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		client:   cfg.HTTPClient,
		limiter:  limiter,
		synonyms: cfg.Synonyms,
		log:      cfg.Logger,
	}
}

// Name implements Provider.
func (s *Spoonacular) Name() string { return "spoonacular" }

// Attempt implements Provider. A missing API key, a title the search
// cannot resolve, and a result with neither ingredients nor steps all
// count as no result.
func (s *Spoonacular) Attempt(ctx context.Context, title string) (*recipe.Enrichment, error) {
	if s.apiKey == "" {
		return nil, internalerr.ErrMissingCredential
	}

	id, err := s.searchID(ctx, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}
	if id == 0 {
		if alt := s.fallbackQuery(title); alt != "" {
			if id, err = s.searchID(ctx, alt); err != nil {
				return nil, err
			}
		}
	}
	if id == 0 {
		return nil, internalerr.ErrNoResult
	}

	return s.fetchInfo(ctx, id)
}

// fallbackQuery builds the retry query: the known-dish translation when
// the table has one, otherwise the transliterated title. Empty when the
// retry would not differ from the original.
func (s *Spoonacular) fallbackQuery(title string) string {
	low := strings.ToLower(strings.TrimSpace(title))
	candidate, ok := s.synonyms[low]
	if !ok {
		candidate = transliterator.Replace(low)
	}
	if candidate == low {
		return ""
	}
	return candidate
}

type searchResponse struct {
	Results []struct {
		ID int `json:"id"`
	} `json:"results"`
}

func (s *Spoonacular) searchID(ctx context.Context, query string) (int, error) {
	params := url.Values{
		"apiKey": {s.apiKey},
		"query":  {query},
		"number": {"1"},
	}
	var resp searchResponse
	if err := s.get(ctx, "/recipes/complexSearch", params, &resp); err != nil {
		return 0, err
	}
	if len(resp.Results) == 0 {
		return 0, nil
	}
	return resp.Results[0].ID, nil
}

type infoResponse struct {
	ExtendedIngredients []struct {
		Original string `json:"original"`
	} `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Steps []struct {
			Step string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
	Instructions string `json:"instructions"`
}

func (s *Spoonacular) fetchInfo(ctx context.Context, id int) (*recipe.Enrichment, error) {
	params := url.Values{
		"apiKey":           {s.apiKey},
		"includeNutrition": {"false"},
	}
	var info infoResponse
	if err := s.get(ctx, fmt.Sprintf("/recipes/%d/information", id), params, &info); err != nil {
		return nil, err
	}

	var ingredients []string
	for _, ing := range info.ExtendedIngredients {
		if ing.Original != "" {
			ingredients = append(ingredients, ing.Original)
		}
	}

	var steps []string
	for _, instr := range info.AnalyzedInstructions {
		for _, st := range instr.Steps {
			if st.Step != "" {
				steps = append(steps, st.Step)
			}
		}
	}
	if len(steps) == 0 {
		steps = splitInstructions(stripHTML(info.Instructions))
	}

	if len(ingredients) == 0 && len(steps) == 0 {
		return nil, internalerr.ErrNoResult
	}

	return &recipe.Enrichment{
		Ingredients: ingredients,
		Steps:       steps,
		Source:      fmt.Sprintf("api:spoonacular:%d", id),
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func (s *Spoonacular) get(ctx context.Context, path string, params url.Values, out any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spoonacular: %s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// stripHTML reduces markup to its text content.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	tz := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tz.Text())
		}
	}
}

// splitInstructions cuts free-text instructions on sentence boundaries,
// keeping fragments longer than three characters, capped at
// maxFallbackSteps.
func splitInstructions(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '\n'
	})
	var steps []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > 3 {
			steps = append(steps, p)
			if len(steps) == maxFallbackSteps {
				break
			}
		}
	}
	return steps
}
