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

// TavilyClient is the content-search provider
type TavilyClient struct {
	endpoint
	apiKey  string
	baseURL string
}

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResponse struct {
	Results []json.RawMessage `json:"results"`
}

type tavilyResult struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	RawContent    string `json:"raw_content"`
	PublishedDate string `json:"published_date"`
}

// NewTavilyClient creates the content-search client. An empty apiKey yields ConfigurationError on every call.
func NewTavilyClient(apiKey, baseURL string, client *HTTPClient, timeout time.Duration, retry RetryPolicy, health *HealthRegistry, log logger.Logger) *TavilyClient {
	return &TavilyClient{
		endpoint: newEndpoint(ProviderTavily, client, timeout, retry, health, log),
		apiKey:   strings.TrimSpace(apiKey),
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Search runs one content search and returns its usable results.
// Results without a URL or that fail to decode are skipped.
func (c *TavilyClient) Search(ctx context.Context, query string) ([]ContentResult, error) {
	if c.apiKey == "" {
		return nil, errors.ConfigurationError("TAVILY_API_KEY is not set").WithOperation(ProviderTavily)
	}

	payload, err := json.Marshal(tavilyRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "advanced",
		MaxResults:    5,
		IncludeAnswer: false,
	})
	if err != nil {
		return nil, errors.InternalError("failed to marshal request", err)
	}

	var resp tavilyResponse
	err = c.callJSON(ctx, query, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, &resp)
	if err != nil {
		return nil, err
	}

	results := make([]ContentResult, 0, len(resp.Results))
	for _, raw := range resp.Results {
		var r tavilyResult
		if err := json.Unmarshal(raw, &r); err != nil {
			c.logger.Debug("skipping malformed result", "query", query, "error", err.Error())
			continue
		}
		if strings.TrimSpace(r.URL) == "" {
			continue
		}

		text := r.Content
		if r.RawContent != "" {
			text = text + " " + r.RawContent
		}
		results = append(results, ContentResult{
			URL:       r.URL,
			Title:     r.Title,
			Text:      PlainText(text),
			Published: parsePublishedDate(r.PublishedDate),
		})
	}
	return results, nil
}

var publishedDateLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"Mon, 02 Jan 2006 15:04:05 MST",
}

func parsePublishedDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range publishedDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
