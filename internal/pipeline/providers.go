package pipeline

import (
	"github.com/ajharbinger/ideascore/internal/logger"
	"github.com/ajharbinger/ideascore/internal/providers"
	"github.com/ajharbinger/ideascore/pkg/config"
)

// NewProviders builds the provider clients from configuration. All clients
// share client and report into health. Missing credentials are not an error
// here: the affected client answers every call with a configuration error.
func NewProviders(cfg *config.Config, client *providers.HTTPClient, health *providers.HealthRegistry, log logger.Logger) Providers {
	retry := providers.NewRetryPolicy(cfg.Retry)

	tavily := providers.NewTavilyClient(cfg.TavilyAPIKey, cfg.TavilyBaseURL, client,
		cfg.Timeouts.ContentSearch, retry, health, log)
	serp := providers.NewSerpAPIClient(cfg.SerpAPIKey, cfg.SerpAPIBaseURL, client,
		cfg.Timeouts.SearchCount, cfg.Timeouts.TimeSeries, retry, health, log)
	exa := providers.NewExaClient(cfg.ExaAPIKey, cfg.ExaBaseURL, client,
		cfg.Timeouts.Discovery, retry, health, log)

	return Providers{
		Content:    tavily,
		Counts:     serp,
		Series:     serp,
		Discoverer: exa,
	}
}

// CredentialStatus reports which providers have an API key configured
func CredentialStatus(cfg *config.Config) map[string]bool {
	return map[string]bool{
		providers.ProviderTavily:  cfg.HasTavilyCredentials(),
		providers.ProviderSerpAPI: cfg.HasSerpAPICredentials(),
		providers.ProviderExa:     cfg.HasExaCredentials(),
	}
}
