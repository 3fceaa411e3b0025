package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
)

func TestFetchBlocksMissingCredentials(t *testing.T) {
	c := &Client{}
	_, err := c.FetchBlocks(context.Background())
	if !errors.Is(err, internalerr.ErrMissingCredential) {
		t.Errorf("err = %v, want ErrMissingCredential", err)
	}

	c = &Client{Token: "t"}
	if _, err := c.FetchBlocks(context.Background()); !errors.Is(err, internalerr.ErrMissingCredential) {
		t.Errorf("err = %v, want ErrMissingCredential for missing page id", err)
	}
}

func TestFetchBlocksPagination(t *testing.T) {
	pages := map[string]string{
		"": `{
			"results": [
				{"type": "paragraph", "paragraph": {"rich_text": [{"type": "text", "text": {"content": "Goulash:"}, "plain_text": "Goulash:"}]}},
				{"type": "divider", "divider": {}}
			],
			"has_more": true,
			"next_cursor": "c2"
		}`,
		"c2": `{
			"results": [
				{"type": "bulleted_list_item", "bulleted_list_item": {"rich_text": [{"type": "text", "text": {"content": "2 eggs"}, "plain_text": "2 eggs"}]}}
			],
			"has_more": false,
			"next_cursor": null
		}`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/blocks/page-1/children" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Notion-Version") == "" {
			t.Error("Notion-Version header missing")
		}
		body, ok := pages[r.URL.Query().Get("start_cursor")]
		if !ok {
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("start_cursor"))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := &Client{Token: "tok", PageID: "page-1", BaseURL: srv.URL}
	blocks, err := c.FetchBlocks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3 across both pages", len(blocks))
	}
	if blocks[0].Kind != "paragraph" || blocks[1].Kind != "divider" || blocks[2].Kind != "bulleted_list_item" {
		t.Errorf("kinds = %q, %q, %q", blocks[0].Kind, blocks[1].Kind, blocks[2].Kind)
	}
	if len(blocks[0].Spans) != 1 || blocks[0].Spans[0].Text != "Goulash:" {
		t.Errorf("spans = %+v", blocks[0].Spans)
	}
}

func TestRecipesParsesFetchedBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"results": [
				{"type": "heading_2", "heading_2": {"rich_text": [{"type": "text", "text": {"content": "Pancakes"}, "plain_text": "Pancakes"}]}},
				{"type": "bulleted_list_item", "bulleted_list_item": {"rich_text": [{"type": "text", "text": {"content": "2 eggs"}, "plain_text": "2 eggs"}]}}
			],
			"has_more": false,
			"next_cursor": null
		}`)
	}))
	defer srv.Close()

	c := &Client{Token: "tok", PageID: "page-1", BaseURL: srv.URL}
	recipes, err := c.Recipes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) != 1 || recipes[0].Title != "Pancakes" {
		t.Errorf("recipes = %+v, want one Pancakes record", recipes)
	}
}

func TestFetchBlocksAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "restricted"}`)
	}))
	defer srv.Close()

	c := &Client{Token: "tok", PageID: "page-1", BaseURL: srv.URL}
	if _, err := c.FetchBlocks(context.Background()); err == nil {
		t.Error("API error must surface")
	}
}
