package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// SourceGenericModel tags results invented by a language model rather
// than looked up from a recipe database.
const SourceGenericModel = "llm:generic"

// modelPrompt asks for a structured, plausible recipe. Shared by both
// generic-model backends.
func modelPrompt(title string) string {
	return fmt.Sprintf(
		"Produce a plausible ingredient list and 6-8 cooking steps for the recipe %q. "+
			"Respond as compact JSON with the fields 'ingredients' and 'steps', "+
			"both arrays of strings. No explanations.", title)
}

// modelRecipe is the JSON shape both backends expect back.
type modelRecipe struct {
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

func (m modelRecipe) enrichment() (*recipe.Enrichment, error) {
	if len(m.Ingredients) == 0 && len(m.Steps) == 0 {
		return nil, internalerr.ErrNoResult
	}
	return &recipe.Enrichment{
		Ingredients: m.Ingredients,
		Steps:       m.Steps,
		Source:      SourceGenericModel,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// ChatModelConfig configures the OpenAI-compatible generic-model provider.
type ChatModelConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// ChatModel is the last-resort provider: it asks an OpenAI-compatible
// chat-completions endpoint for a plausible ingredient and step list.
type ChatModel struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewChatModel builds the provider.
func NewChatModel(cfg ChatModelConfig) *ChatModel {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ChatModel{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  cfg.HTTPClient,
	}
}

// Name implements Provider.
func (c *ChatModel) Name() string { return "chat-model" }

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Attempt implements Provider.
func (c *ChatModel) Attempt(ctx context.Context, title string) (*recipe.Enrichment, error) {
	if c.apiKey == "" {
		return nil, internalerr.ErrMissingCredential
	}
	if c.baseURL == "" || c.model == "" {
		return nil, fmt.Errorf("chat-model: base URL and model required")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: modelPrompt(title)},
		},
		Temperature:    0.3,
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat-model: status %d: %s", resp.StatusCode, string(respBody))
	}

	var payload chatResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("chat-model: %s", payload.Error.Message)
	}
	if len(payload.Choices) == 0 {
		return nil, internalerr.ErrNoResult
	}

	var parsed modelRecipe
	if err := json.Unmarshal([]byte(payload.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("chat-model: parse structured json: %w", err)
	}
	return parsed.enrichment()
}
