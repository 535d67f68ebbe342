// Package completion implements the text-completion provider client using
// the legacy /completions wire contract: a prompt goes out with model and
// sampling parameters, a list of generated candidates comes back.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"converse-server/internal/infrastructure/logger"
	"converse-server/internal/infrastructure/metrics"
	"converse-server/internal/utils/httpclients"
)

const completionsPath = "/completions"

// Options are the sampling parameters sent with every request.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// Client calls the completion provider. One blocking round trip per Complete
// call, no retries.
type Client struct {
	client *resty.Client
	opts   Options
}

func NewClient(baseURL, apiKey string, opts Options, timeout time.Duration) *Client {
	client := httpclients.NewClient("CompletionProvider", timeout)
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	return &Client{client: client, opts: opts}
}

// Complete sends the prompt and returns the primary generated candidate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	status := "success"
	defer func() {
		metrics.RecordProviderRequest("completion", status, time.Since(start).Seconds())
	}()

	request := openai.CompletionRequest{
		Model:       c.opts.Model,
		Prompt:      prompt,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	}

	var body openai.CompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&body).
		Post(completionsPath)
	if err != nil {
		status = "error"
		lg := logger.GetLogger()
		lg.Error().Err(err).Str("service", "completion").Msg("failed to query completion provider")
		return "", fmt.Errorf("query completion provider: %w", err)
	}
	if resp.IsError() {
		status = "error"
		lg := logger.GetLogger()
		lg.Error().
			Int("status", resp.StatusCode()).
			Str("service", "completion").
			Str("response", resp.String()).
			Msg("completion provider returned an error")
		return "", fmt.Errorf("completion provider error (status %d): %s", resp.StatusCode(), resp.String())
	}

	text, err := PrimaryChoice(body)
	if err != nil {
		status = "error"
		return "", err
	}
	return text, nil
}

// PrimaryChoice selects the primary generated candidate: the choice the
// provider ranked first (lowest index). Selection is by rank, not slice
// position, so a provider reordering its response stays harmless.
func PrimaryChoice(resp openai.CompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion provider returned no candidates")
	}
	primary := resp.Choices[0]
	for _, choice := range resp.Choices[1:] {
		if choice.Index < primary.Index {
			primary = choice
		}
	}
	return strings.TrimSpace(primary.Text), nil
}
