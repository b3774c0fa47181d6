// Package websearch wraps the Tavily search API. When no API key is
// configured the client degrades to a clearly labeled placeholder result
// with the same shape, so downstream normalization stays uniform.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

const (
	endpoint       = "https://api.tavily.com/search"
	defaultTimeout = 30 * time.Second

	// PlaceholderProvider labels results returned without a configured
	// search backend.
	PlaceholderProvider = "placeholder"
	tavilyProvider      = "tavily"
)

type Client struct {
	apiKey     string
	httpClient *http.Client
	sanitizer  *bluemonday.Policy
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		// Search snippets can carry HTML; strip it before it reaches the LLM.
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Configured reports whether a real search backend is available.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content"`
}

// Search runs the query against the provider. An unconfigured provider is
// not an error: a placeholder payload with the same shape comes back.
func (c *Client) Search(ctx context.Context, query string) (map[string]any, error) {
	if !c.Configured() {
		return map[string]any{
			"search_provider": PlaceholderProvider,
			"query_used":      query,
			"results": []Result{
				{Title: "Placeholder Search Result", Content: "Web search provider is not configured."},
			},
		}, nil
	}

	reqBody := map[string]any{
		"api_key":        c.apiKey,
		"query":          query,
		"search_depth":   "advanced",
		"max_results":    3,
		"include_answer": true,
	}
	blob, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider HTTP %d: %.200s", resp.StatusCode, string(raw))
	}

	var payload struct {
		Answer  string   `json:"answer"`
		Results []Result `json:"results"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]Result, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, Result{
			Title:   c.sanitizer.Sanitize(r.Title),
			URL:     r.URL,
			Content: c.sanitizer.Sanitize(r.Content),
		})
	}

	return map[string]any{
		"search_provider": tavilyProvider,
		"query_used":      query,
		"answer_summary":  c.sanitizer.Sanitize(payload.Answer),
		"results":         results,
	}, nil
}
