package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ajharbinger/ideascore/internal/errors"
	"github.com/ajharbinger/ideascore/internal/logger"
)

const exaResultsPerQuery = 10

// ExaClient is the semantic company-discovery provider
type ExaClient struct {
	endpoint
	apiKey  string
	baseURL string
}

type exaRequest struct {
	Query      string      `json:"query"`
	Type       string      `json:"type"`
	NumResults int         `json:"numResults"`
	Contents   exaContents `json:"contents"`
}

type exaContents struct {
	Text       bool `json:"text"`
	Highlights bool `json:"highlights"`
}

type exaResponse struct {
	Results []json.RawMessage `json:"results"`
}

type exaResult struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Highlights []string `json:"highlights"`
}

// NewExaClient creates the company-discovery client. An empty apiKey yields ConfigurationError on every call.
func NewExaClient(apiKey, baseURL string, client *HTTPClient, timeout time.Duration, retry RetryPolicy, health *HealthRegistry, log logger.Logger) *ExaClient {
	return &ExaClient{
		endpoint: newEndpoint(ProviderExa, client, timeout, retry, health, log),
		apiKey:   strings.TrimSpace(apiKey),
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Discover runs one semantic search for companies matching query
func (c *ExaClient) Discover(ctx context.Context, query string) ([]DiscoveryResult, error) {
	if c.apiKey == "" {
		return nil, errors.ConfigurationError("EXA_API_KEY is not set").WithOperation(ProviderExa)
	}

	payload, err := json.Marshal(exaRequest{
		Query:      query,
		Type:       "auto",
		NumResults: exaResultsPerQuery,
		Contents:   exaContents{Text: true, Highlights: true},
	})
	if err != nil {
		return nil, errors.InternalError("failed to marshal request", err)
	}

	var resp exaResponse
	err = c.callJSON(ctx, query, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		return req, nil
	}, &resp)
	if err != nil {
		return nil, err
	}

	results := make([]DiscoveryResult, 0, len(resp.Results))
	for _, raw := range resp.Results {
		var r exaResult
		if err := json.Unmarshal(raw, &r); err != nil {
			c.logger.Debug("skipping malformed result", "query", query, "error", err.Error())
			continue
		}
		if strings.TrimSpace(r.URL) == "" {
			continue
		}
		results = append(results, DiscoveryResult{
			URL:        r.URL,
			Title:      strings.TrimSpace(r.Title),
			Text:       r.Text,
			Highlights: r.Highlights,
		})
	}
	return results, nil
}
