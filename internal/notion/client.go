// Package notion fetches the recipe page from the Notion API and hands
// its block stream to the parser. Pagination and auth live here; the
// parser only ever sees the final, order-preserving block sequence.
package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cookdex/cookdex/pkg/cookdex/ingest"
	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
	pageSize       = 100
)

// Client reads blocks from one Notion page.
type Client struct {
	Token  string
	PageID string

	// BaseURL overrides the API endpoint, for tests.
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

// Recipes implements cookdex.CatalogSource: fetch all blocks, parse them
// into recipe records.
func (c *Client) Recipes(ctx context.Context) ([]recipe.Recipe, error) {
	blocks, err := c.FetchBlocks(ctx)
	if err != nil {
		return nil, err
	}
	return ingest.ParseBlocks(blocks), nil
}

// FetchBlocks loads every block of the configured page, following
// pagination. Missing credentials are a configuration failure, reported
// immediately.
func (c *Client) FetchBlocks(ctx context.Context) ([]ingest.Block, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("notion: NOTION_TOKEN: %w", internalerr.ErrMissingCredential)
	}
	if c.PageID == "" {
		return nil, fmt.Errorf("notion: NOTION_RECIPES_ID: %w", internalerr.ErrMissingCredential)
	}

	var blocks []ingest.Block
	cursor := ""
	for {
		page, err := c.fetchPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Results {
			blocks = append(blocks, toBlock(raw))
		}
		if !page.HasMore {
			return blocks, nil
		}
		cursor = page.NextCursor
	}
}

type blockPage struct {
	Results    []apiBlock `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor string     `json:"next_cursor"`
}

// apiBlock keeps the type-keyed payload raw: the payload for a block of
// type T lives under the JSON key T.
type apiBlock struct {
	Type    string
	Payload json.RawMessage
}

func (b *apiBlock) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["type"]; ok {
		if err := json.Unmarshal(raw, &b.Type); err != nil {
			return err
		}
	}
	b.Payload = fields[b.Type]
	return nil
}

type richText struct {
	Type string `json:"type"`
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
	PlainText string `json:"plain_text"`
}

type blockPayload struct {
	RichText []richText `json:"rich_text"`
}

func toBlock(raw apiBlock) ingest.Block {
	block := ingest.Block{Kind: raw.Type}
	if len(raw.Payload) == 0 {
		return block
	}
	var payload blockPayload
	if err := json.Unmarshal(raw.Payload, &payload); err != nil {
		return block
	}
	for _, rt := range payload.RichText {
		block.Spans = append(block.Spans, ingest.Span{
			Type:      rt.Type,
			Text:      rt.Text.Content,
			PlainText: rt.PlainText,
		})
	}
	return block
}

func (c *Client) fetchPage(ctx context.Context, cursor string) (*blockPage, error) {
	params := url.Values{"page_size": {strconv.Itoa(pageSize)}}
	if cursor != "" {
		params.Set("start_cursor", cursor)
	}
	endpoint := fmt.Sprintf("%s/v1/blocks/%s/children?%s", c.baseURL(), c.PageID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("notion: API error %d: %s", resp.StatusCode, string(body))
	}

	var page blockPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}
