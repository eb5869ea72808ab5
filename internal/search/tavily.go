package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/verifact/verifact/internal/model"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Tavily API endpoint
const DefaultBaseURL = "https://api.tavily.com"

// maxExcerptChars caps how much of each result's content is retained
const maxExcerptChars = 500

// Config holds evidence retriever configuration
type Config struct {
	APIKey     string
	BaseURL    string
	Depth      string  // "basic" or "advanced"
	MaxResults int     // Result cap per claim
	Timeout    int     // seconds
	RPS        float64 // Outbound request rate; zero disables throttling
	Burst      int
}

// Client retrieves web evidence for claims via the Tavily search API
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	depth      string
	maxResults int
	limiter    *rate.Limiter
}

// NewClient creates a new evidence retriever
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Tavily API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	depth := cfg.Depth
	if depth == "" {
		depth = "advanced"
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		depth:      depth,
		maxResults: maxResults,
		limiter:    limiter,
	}, nil
}

// Search runs one search request for the claim text, used verbatim as the
// query. Every failure is caught and converted to an empty result set plus
// the original query; Search never fails the caller.
func (c *Client) Search(ctx context.Context, query string) *model.SearchResult {
	snippets, err := c.searchOnce(ctx, query)
	if err != nil {
		return &model.SearchResult{Results: []model.EvidenceSnippet{}, Query: query}
	}
	return &model.SearchResult{Results: snippets, Query: query}
}

// tavilyRequest matches the Tavily search request body
type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

// tavilyResponse matches the fields we use from the Tavily response;
// everything is treated as optional
type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

func (c *Client) searchOnce(ctx context.Context, query string) ([]model.EvidenceSnippet, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: c.depth,
		MaxResults:  c.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	snippets := make([]model.EvidenceSnippet, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if len(snippets) >= c.maxResults {
			break
		}
		snippets = append(snippets, model.EvidenceSnippet{
			Title:   StripMarkup(r.Title),
			Excerpt: truncateExcerpt(StripMarkup(r.Content), maxExcerptChars),
			URL:     r.URL,
		})
	}

	return snippets, nil
}

// truncateExcerpt caps s at max characters on a rune boundary
func truncateExcerpt(s string, max int) string {
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
