// Package llm phrases plan results into a short conversational
// recommendation via an OpenAI-compatible chat completion endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cookdex/cookdex/pkg/cookdex/rank"
)

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const systemPrompt = "You are a kitchen planning assistant. " +
	"Give clear, short recommendations (max 6 sentences), " +
	"name the 2-3 best options with a one-line reason each. " +
	"If no candidate fits, say so honestly and suggest pragmatic alternatives."

// FormatPlan asks the model for a grounded recommendation over the
// ranked candidates.
func (c *Client) FormatPlan(ctx context.Context, message string, items []rank.Candidate) (string, error) {
	user, err := formatPrompt(message, items)
	if err != nil {
		return "", err
	}
	return c.Chat(ctx, systemPrompt, user)
}

// Chat sends one system+user exchange and returns the reply text.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if c.BaseURL == "" || c.Model == "" {
		return "", fmt.Errorf("llm: base URL and model required")
	}

	reqBody, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Temperature: 0.3,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Error != nil {
		return "", fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// candidateDigest is the compact view of a candidate the model sees.
type candidateDigest struct {
	Title          string   `json:"title"`
	KeyIngredients []string `json:"key_ingredients"`
	Source         string   `json:"source"`
	Score          int      `json:"score"`
}

func formatPrompt(message string, items []rank.Candidate) (string, error) {
	digests := make([]candidateDigest, 0, 5)
	for _, c := range items {
		if len(digests) == 5 {
			break
		}
		ingredients := c.Ingredients
		if len(ingredients) > 8 {
			ingredients = ingredients[:8]
		}
		digests = append(digests, candidateDigest{
			Title:          c.Title,
			KeyIngredients: ingredients,
			Source:         c.EnrichmentSource,
			Score:          c.Score,
		})
	}

	compact, err := json.Marshal(digests)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("User question: %s\n\nCandidates (JSON):\n%s\n", message, compact), nil
}
