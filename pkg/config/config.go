package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "IDEASCORE_CONFIG"

// Config holds application configuration
type Config struct {
	Port        string
	Environment string

	// Provider credentials. An empty value means the provider is unavailable.
	TavilyAPIKey   string
	SerpAPIKey     string
	ExaAPIKey      string
	TavilyBaseURL  string
	SerpAPIBaseURL string
	ExaBaseURL     string

	Timeouts ProviderTimeouts
	Retry    RetryConfig
	HTTP     HTTPConfig

	// Upper bound for a single agent inside one evaluation
	AgentTimeout time.Duration

	// Security configuration
	AllowedOrigins  string
	EnableRateLimit bool
	MaxRequestSize  int64
}

// ProviderTimeouts are per-call timeouts for each external provider
type ProviderTimeouts struct {
	ContentSearch time.Duration `yaml:"contentSearch"`
	SearchCount   time.Duration `yaml:"searchCount"`
	TimeSeries    time.Duration `yaml:"timeSeries"`
	Discovery     time.Duration `yaml:"discovery"`
}

// RetryConfig controls the bounded retry applied to transient provider failures
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// HTTPConfig sizes the shared outbound connection pool
type HTTPConfig struct {
	MaxIdleConns      int           `yaml:"maxIdleConns"`
	MaxConnsPerHost   int           `yaml:"maxConnsPerHost"`
	IdleConnTimeout   time.Duration `yaml:"idleConnTimeout"`
	RequestsPerSecond int           `yaml:"requestsPerSecond"`
}

// fileConfig is the optional YAML overlay. Environment variables win over it.
type fileConfig struct {
	Providers struct {
		TavilyBaseURL  string `yaml:"tavilyBaseUrl"`
		SerpAPIBaseURL string `yaml:"serpapiBaseUrl"`
		ExaBaseURL     string `yaml:"exaBaseUrl"`
	} `yaml:"providers"`
	Timeouts ProviderTimeouts `yaml:"timeouts"`
	Retry    struct {
		MaxRetries     *int          `yaml:"maxRetries"`
		InitialBackoff time.Duration `yaml:"initialBackoff"`
		MaxBackoff     time.Duration `yaml:"maxBackoff"`
	} `yaml:"retry"`
	HTTP         HTTPConfig    `yaml:"http"`
	AgentTimeout time.Duration `yaml:"agentTimeout"`
}

// New creates a new configuration instance from the optional YAML file and environment variables
func New() *Config {
	cfg := defaults()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (using defaults)", path, err)
		} else if err := cfg.applyYAML(raw); err != nil {
			log.Printf("config: cannot parse %s: %v (using defaults)", path, err)
		}
	}

	cfg.applyEnv()
	cfg.Retry.MaxRetries = clampRetries(cfg.Retry.MaxRetries)
	return cfg
}

func defaults() *Config {
	return &Config{
		Port:           "8080",
		Environment:    "development",
		TavilyBaseURL:  "https://api.tavily.com",
		SerpAPIBaseURL: "https://serpapi.com",
		ExaBaseURL:     "https://api.exa.ai",
		Timeouts: ProviderTimeouts{
			ContentSearch: 15 * time.Second,
			SearchCount:   10 * time.Second,
			TimeSeries:    10 * time.Second,
			Discovery:     10 * time.Second,
		},
		Retry: RetryConfig{
			MaxRetries:     2,
			InitialBackoff: 500 * time.Millisecond,
			MaxBackoff:     1500 * time.Millisecond,
		},
		HTTP: HTTPConfig{
			MaxIdleConns:      20,
			MaxConnsPerHost:   50,
			IdleConnTimeout:   30 * time.Second,
			RequestsPerSecond: 20,
		},
		AgentTimeout:    60 * time.Second,
		EnableRateLimit: true,
		MaxRequestSize:  1024 * 1024,
	}
}

func (c *Config) applyYAML(raw []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return err
	}

	if fc.Providers.TavilyBaseURL != "" {
		c.TavilyBaseURL = fc.Providers.TavilyBaseURL
	}
	if fc.Providers.SerpAPIBaseURL != "" {
		c.SerpAPIBaseURL = fc.Providers.SerpAPIBaseURL
	}
	if fc.Providers.ExaBaseURL != "" {
		c.ExaBaseURL = fc.Providers.ExaBaseURL
	}

	if fc.Timeouts.ContentSearch > 0 {
		c.Timeouts.ContentSearch = fc.Timeouts.ContentSearch
	}
	if fc.Timeouts.SearchCount > 0 {
		c.Timeouts.SearchCount = fc.Timeouts.SearchCount
	}
	if fc.Timeouts.TimeSeries > 0 {
		c.Timeouts.TimeSeries = fc.Timeouts.TimeSeries
	}
	if fc.Timeouts.Discovery > 0 {
		c.Timeouts.Discovery = fc.Timeouts.Discovery
	}

	if fc.Retry.MaxRetries != nil {
		c.Retry.MaxRetries = *fc.Retry.MaxRetries
	}
	if fc.Retry.InitialBackoff > 0 {
		c.Retry.InitialBackoff = fc.Retry.InitialBackoff
	}
	if fc.Retry.MaxBackoff > 0 {
		c.Retry.MaxBackoff = fc.Retry.MaxBackoff
	}

	if fc.HTTP.MaxIdleConns > 0 {
		c.HTTP.MaxIdleConns = fc.HTTP.MaxIdleConns
	}
	if fc.HTTP.MaxConnsPerHost > 0 {
		c.HTTP.MaxConnsPerHost = fc.HTTP.MaxConnsPerHost
	}
	if fc.HTTP.IdleConnTimeout > 0 {
		c.HTTP.IdleConnTimeout = fc.HTTP.IdleConnTimeout
	}
	if fc.HTTP.RequestsPerSecond > 0 {
		c.HTTP.RequestsPerSecond = fc.HTTP.RequestsPerSecond
	}
	if fc.AgentTimeout > 0 {
		c.AgentTimeout = fc.AgentTimeout
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENV", c.Environment)

	c.TavilyAPIKey = strings.TrimSpace(getEnv("TAVILY_API_KEY", ""))
	c.SerpAPIKey = strings.TrimSpace(getEnv("SERPAPI_KEY", ""))
	c.ExaAPIKey = strings.TrimSpace(getEnv("EXA_API_KEY", ""))
	c.TavilyBaseURL = getEnv("TAVILY_BASE_URL", c.TavilyBaseURL)
	c.SerpAPIBaseURL = getEnv("SERPAPI_BASE_URL", c.SerpAPIBaseURL)
	c.ExaBaseURL = getEnv("EXA_BASE_URL", c.ExaBaseURL)

	c.Timeouts.ContentSearch = getEnvAsDuration("PROVIDER_TIMEOUT_CONTENT_SEARCH", c.Timeouts.ContentSearch)
	c.Timeouts.SearchCount = getEnvAsDuration("PROVIDER_TIMEOUT_SEARCH_COUNT", c.Timeouts.SearchCount)
	c.Timeouts.TimeSeries = getEnvAsDuration("PROVIDER_TIMEOUT_TIME_SERIES", c.Timeouts.TimeSeries)
	c.Timeouts.Discovery = getEnvAsDuration("PROVIDER_TIMEOUT_DISCOVERY", c.Timeouts.Discovery)

	c.Retry.MaxRetries = getEnvAsInt("PROVIDER_MAX_RETRIES", c.Retry.MaxRetries)
	c.Retry.InitialBackoff = getEnvAsDuration("PROVIDER_INITIAL_BACKOFF", c.Retry.InitialBackoff)
	c.Retry.MaxBackoff = getEnvAsDuration("PROVIDER_MAX_BACKOFF", c.Retry.MaxBackoff)
	c.HTTP.RequestsPerSecond = getEnvAsInt("PROVIDER_REQUESTS_PER_SECOND", c.HTTP.RequestsPerSecond)

	c.AgentTimeout = getEnvAsDuration("PIPELINE_AGENT_TIMEOUT", c.AgentTimeout)

	c.AllowedOrigins = getEnv("ALLOWED_ORIGINS", c.AllowedOrigins)
	c.EnableRateLimit = getEnv("ENABLE_RATE_LIMIT", strconv.FormatBool(c.EnableRateLimit)) == "true"
	c.MaxRequestSize = getEnvAsInt64("MAX_REQUEST_SIZE", c.MaxRequestSize)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasTavilyCredentials returns true if the content-search provider is configured
func (c *Config) HasTavilyCredentials() bool {
	return c.TavilyAPIKey != ""
}

// HasSerpAPICredentials returns true if the search-count and trends provider is configured
func (c *Config) HasSerpAPICredentials() bool {
	return c.SerpAPIKey != ""
}

// HasExaCredentials returns true if the company-discovery provider is configured
func (c *Config) HasExaCredentials() bool {
	return c.ExaAPIKey != ""
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return []string{}
	}
	origins := strings.Split(c.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

func clampRetries(n int) int {
	if n < 0 {
		return 0
	}
	if n > 2 {
		return 2
	}
	return n
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
