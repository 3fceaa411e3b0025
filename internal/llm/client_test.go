package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cookdex/cookdex/pkg/cookdex/rank"
)

func TestFormatPlanSendsCandidatesAndReturnsReply(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Take the stir fry."}}]}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "k", Model: "test-model"}
	items := []rank.Candidate{
		{Title: "Carrot Tofu Stir Fry", Ingredients: []string{"2 carrots", "200 g tofu"}, Score: 8},
	}
	got, err := c.FormatPlan(context.Background(), "what can I cook?", items)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Take the stir fry." {
		t.Errorf("reply = %q", got)
	}

	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v, want system then user", captured.Messages)
	}
	user := captured.Messages[1].Content
	if !strings.Contains(user, "Carrot Tofu Stir Fry") || !strings.Contains(user, "what can I cook?") {
		t.Errorf("user prompt missing context: %q", user)
	}
}

func TestChatSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Model: "test-model"}
	if _, err := c.Chat(context.Background(), "sys", "user"); err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v, want the API error message", err)
	}
}

func TestChatRequiresConfiguration(t *testing.T) {
	c := &Client{}
	if _, err := c.Chat(context.Background(), "sys", "user"); err == nil {
		t.Error("unconfigured client must fail")
	}
}

func TestFormatPromptCapsCandidates(t *testing.T) {
	items := make([]rank.Candidate, 8)
	for i := range items {
		items[i] = rank.Candidate{Title: "R"}
	}
	prompt, err := formatPrompt("q", items)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(prompt, `"title"`); got != 5 {
		t.Errorf("prompt carries %d candidates, want 5", got)
	}
}
