// Package search implements the web-search provider client. The wire
// contract is the Tavily search API: api_key travels in the JSON body and
// results come back as ranked {title, url, content} documents.
package search

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"converse-server/internal/infrastructure/logger"
	"converse-server/internal/infrastructure/metrics"
	"converse-server/internal/utils/httpclients"
)

const searchPath = "/search"

// Result is one ranked document returned by the provider.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type searchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	SearchDepth       string `json:"search_depth"`
	IncludeRawContent bool   `json:"include_raw_content"`
	IncludeImages     bool   `json:"include_images"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Client calls the search provider. One blocking round trip per Search call,
// no retries; the bounded client timeout is the only protection against a
// stalled provider.
type Client struct {
	client *resty.Client
	apiKey string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	client := httpclients.NewClient("SearchProvider", timeout)
	client.SetBaseURL(baseURL)
	return &Client{client: client, apiKey: apiKey}
}

// Search returns up to maxResults ranked documents for the query.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	start := time.Now()
	status := "success"
	defer func() {
		metrics.RecordProviderRequest("search", status, time.Since(start).Seconds())
	}()

	var body searchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(searchRequest{
			APIKey:            c.apiKey,
			Query:             query,
			MaxResults:        maxResults,
			SearchDepth:       "basic",
			IncludeRawContent: false,
			IncludeImages:     false,
		}).
		SetResult(&body).
		Post(searchPath)
	if err != nil {
		status = "error"
		lg := logger.GetLogger()
		lg.Error().Err(err).Str("service", "search").Msg("failed to query search provider")
		return nil, fmt.Errorf("query search provider: %w", err)
	}
	if resp.IsError() {
		status = "error"
		lg := logger.GetLogger()
		lg.Error().
			Int("status", resp.StatusCode()).
			Str("service", "search").
			Str("response", resp.String()).
			Msg("search provider returned an error")
		return nil, fmt.Errorf("search provider error (status %d): %s", resp.StatusCode(), resp.String())
	}

	return body.Results, nil
}
