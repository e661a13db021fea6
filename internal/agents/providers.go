package agents

import (
	"context"

	"github.com/ajharbinger/ideascore/internal/providers"
)

// ContentSearcher returns articles and discussions for a query
type ContentSearcher interface {
	Search(ctx context.Context, query string) ([]providers.ContentResult, error)
}

// SearchCounter returns the web result count for a query
type SearchCounter interface {
	Count(ctx context.Context, query string) (providers.SearchCount, error)
}

// TimeSeriesSource returns a search-interest series for a keyword, oldest first
type TimeSeriesSource interface {
	InterestOverTime(ctx context.Context, keyword, geo string) ([]float64, error)
}

// CompanyDiscoverer returns candidate companies for a query
type CompanyDiscoverer interface {
	Discover(ctx context.Context, query string) ([]providers.DiscoveryResult, error)
}

var (
	_ ContentSearcher   = (*providers.TavilyClient)(nil)
	_ SearchCounter     = (*providers.SerpAPIClient)(nil)
	_ TimeSeriesSource  = (*providers.SerpAPIClient)(nil)
	_ CompanyDiscoverer = (*providers.ExaClient)(nil)
)
