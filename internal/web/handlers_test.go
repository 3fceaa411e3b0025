package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cookdex/cookdex/pkg/cookdex"
	"github.com/cookdex/cookdex/pkg/cookdex/agent"
	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
	"github.com/cookdex/cookdex/pkg/cookdex/rank"
)

type fakePlanner struct {
	got  cookdex.PlanRequest
	resp cookdex.PlanResponse
	err  error
}

func (f *fakePlanner) Plan(ctx context.Context, req cookdex.PlanRequest) (cookdex.PlanResponse, error) {
	f.got = req
	return f.resp, f.err
}

type fakeAgent struct {
	reply agent.Reply
	err   error
}

func (f *fakeAgent) Handle(ctx context.Context, message string) (agent.Reply, error) {
	return f.reply, f.err
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := NewServer(&fakePlanner{}, nil, nil)
	w := do(t, s, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestPlanEndpoint(t *testing.T) {
	planner := &fakePlanner{resp: cookdex.PlanResponse{
		ID:    "01ARZ",
		Query: "carrots tofu",
		Items: []rank.Candidate{{Title: "Carrot Tofu Stir Fry", Score: 8}},
	}}
	s := NewServer(planner, nil, nil)

	w := do(t, s, http.MethodPost, "/plan", `{"pantry": "carrots tofu", "exclude": ["feta"], "top_k": 3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	if planner.got.Query != "carrots tofu" || planner.got.TopK != 3 {
		t.Errorf("request = %+v", planner.got)
	}
	if len(planner.got.Exclude) != 1 || planner.got.Exclude[0] != "feta" {
		t.Errorf("Exclude = %v", planner.got.Exclude)
	}
	if !planner.got.Strict {
		t.Error("strict must default to true when omitted")
	}

	var resp cookdex.PlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Title != "Carrot Tofu Stir Fry" {
		t.Errorf("response = %+v", resp)
	}
}

func TestPlanEndpointExplicitStrictFalse(t *testing.T) {
	planner := &fakePlanner{}
	s := NewServer(planner, nil, nil)

	w := do(t, s, http.MethodPost, "/plan", `{"pantry": "carrots", "strict": false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if planner.got.Strict {
		t.Error("explicit strict=false ignored")
	}
}

func TestPlanEndpointRejectsEmptyPantry(t *testing.T) {
	s := NewServer(&fakePlanner{}, nil, nil)
	if w := do(t, s, http.MethodPost, "/plan", `{"pantry": "  "}`); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if w := do(t, s, http.MethodPost, "/plan", `not json`); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPlanEndpointUpstreamFailure(t *testing.T) {
	s := NewServer(&fakePlanner{err: errors.New("notion down")}, nil, nil)
	w := do(t, s, http.MethodPost, "/plan", `{"pantry": "carrots"}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestPlanEndpointMissingCredentialIsConfigFailure(t *testing.T) {
	err := fmt.Errorf("fetch catalog: %w", internalerr.ErrMissingCredential)
	s := NewServer(&fakePlanner{err: err}, nil, nil)
	w := do(t, s, http.MethodPost, "/plan", `{"pantry": "carrots"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for a configuration failure", w.Code)
	}
}

func TestChatEndpoint(t *testing.T) {
	chatAgent := &fakeAgent{reply: agent.Reply{Intent: "plan", Text: "Try the stir fry."}}
	s := NewServer(&fakePlanner{}, chatAgent, nil)

	w := do(t, s, http.MethodPost, "/chat", `{"message": "what can I cook?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var reply agent.Reply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Text != "Try the stir fry." {
		t.Errorf("reply = %+v", reply)
	}
}

func TestChatEndpointRejectsEmptyMessage(t *testing.T) {
	s := NewServer(&fakePlanner{}, &fakeAgent{}, nil)
	if w := do(t, s, http.MethodPost, "/chat", `{"message": ""}`); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestChatEndpointWithoutAgent(t *testing.T) {
	s := NewServer(&fakePlanner{}, nil, nil)
	w := do(t, s, http.MethodPost, "/chat", `{"message": "hi"}`)
	if w.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", w.Code)
	}
}
