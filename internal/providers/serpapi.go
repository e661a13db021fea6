package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ajharbinger/ideascore/internal/errors"
	"github.com/ajharbinger/ideascore/internal/logger"
)

// SerpAPIClient serves both the web-search-count and the time-series interest providers
type SerpAPIClient struct {
	search  endpoint
	trends  endpoint
	apiKey  string
	baseURL string
}

type serpSearchResponse struct {
	SearchInformation struct {
		TotalResults int64 `json:"total_results"`
	} `json:"search_information"`
	RelatedSearches []json.RawMessage `json:"related_searches"`
}

type serpTrendsResponse struct {
	InterestOverTime struct {
		TimelineData []json.RawMessage `json:"timeline_data"`
	} `json:"interest_over_time"`
}

type serpTimelinePoint struct {
	Values []struct {
		ExtractedValue *float64 `json:"extracted_value"`
	} `json:"values"`
}

// NewSerpAPIClient creates the SerpAPI client. countTimeout bounds search-count calls, seriesTimeout trends calls.
func NewSerpAPIClient(apiKey, baseURL string, client *HTTPClient, countTimeout, seriesTimeout time.Duration, retry RetryPolicy, health *HealthRegistry, log logger.Logger) *SerpAPIClient {
	return &SerpAPIClient{
		search:  newEndpoint(ProviderSerpAPI, client, countTimeout, retry, health, log),
		trends:  newEndpoint(ProviderSerpAPITrend, client, seriesTimeout, retry, health, log),
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Count returns the total result count and number of related searches for a Google query
func (c *SerpAPIClient) Count(ctx context.Context, query string) (SearchCount, error) {
	if c.apiKey == "" {
		return SearchCount{}, errors.ConfigurationError("SERPAPI_KEY is not set").WithOperation(ProviderSerpAPI)
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", "1")

	var resp serpSearchResponse
	if err := c.search.callJSON(ctx, query, c.get(params), &resp); err != nil {
		return SearchCount{}, err
	}

	return SearchCount{
		TotalResults:    resp.SearchInformation.TotalResults,
		RelatedSearches: len(resp.RelatedSearches),
	}, nil
}

// InterestOverTime returns the 5-year search-interest series for keyword, oldest first.
// geo is optional. Points without a numeric value are skipped.
func (c *SerpAPIClient) InterestOverTime(ctx context.Context, keyword, geo string) ([]float64, error) {
	if c.apiKey == "" {
		return nil, errors.ConfigurationError("SERPAPI_KEY is not set").WithOperation(ProviderSerpAPITrend)
	}

	params := url.Values{}
	params.Set("engine", "google_trends")
	params.Set("q", keyword)
	params.Set("data_type", "TIMESERIES")
	params.Set("date", "today 5-y")
	params.Set("api_key", c.apiKey)
	if geo = strings.TrimSpace(geo); geo != "" {
		params.Set("geo", geo)
	}

	var resp serpTrendsResponse
	if err := c.trends.callJSON(ctx, keyword, c.get(params), &resp); err != nil {
		return nil, err
	}

	series := make([]float64, 0, len(resp.InterestOverTime.TimelineData))
	for _, raw := range resp.InterestOverTime.TimelineData {
		var point serpTimelinePoint
		if err := json.Unmarshal(raw, &point); err != nil || len(point.Values) == 0 || point.Values[0].ExtractedValue == nil {
			continue
		}
		series = append(series, *point.Values[0].ExtractedValue)
	}
	if len(series) == 0 {
		return nil, errors.ParseError("no interest_over_time data for "+keyword, nil).WithOperation(ProviderSerpAPITrend)
	}
	return series, nil
}

func (c *SerpAPIClient) get(params url.Values) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	}
}
