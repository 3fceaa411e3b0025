package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// GeminiConfig configures the Gemini backend of the generic-model
// provider.
type GeminiConfig struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for tests.
	BaseURL string
}

// GeminiModel asks Gemini for a plausible ingredient and step list using
// a structured output schema.
type GeminiModel struct {
	client *genai.Client
	model  string
}

var geminiSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"ingredients": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"steps":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"ingredients", "steps"},
}

// NewGemini builds the provider. The API key is required here because the
// genai client cannot be constructed without one; callers gate on the
// credential before wiring this backend.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, internalerr.ErrMissingCredential
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("gemini: model required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &GeminiModel{client: client, model: strings.TrimSpace(cfg.Model)}, nil
}

// Name implements Provider.
func (g *GeminiModel) Name() string { return "gemini" }

// Attempt implements Provider.
func (g *GeminiModel) Attempt(ctx context.Context, title string) (*recipe.Enrichment, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(modelPrompt(title)),
		&genai.GenerateContentConfig{
			CandidateCount:   1,
			ResponseMIMEType: "application/json",
			ResponseSchema:   geminiSchema,
		},
	)
	if err != nil {
		return nil, err
	}

	var parsed modelRecipe
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		return nil, fmt.Errorf("gemini: parse structured json: %w", err)
	}
	return parsed.enrichment()
}
