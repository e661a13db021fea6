package providers

import "time"

// Provider names used for health tracking and logs
const (
	ProviderTavily       = "tavily"
	ProviderSerpAPI      = "serpapi"
	ProviderSerpAPITrend = "serpapi_trends"
	ProviderExa          = "exa"
)

// ContentResult is one content-search hit
type ContentResult struct {
	URL       string
	Title     string
	Text      string
	Published time.Time // zero when the provider did not report a date
}

// SearchCount is the web-search-count provider's answer for one query
type SearchCount struct {
	TotalResults    int64
	RelatedSearches int
}

// DiscoveryResult is one semantic company-discovery hit
type DiscoveryResult struct {
	URL        string
	Title      string
	Text       string
	Highlights []string
}
