// Package providers contains the clients for the external search providers and the shared
// transport, retry and health plumbing they use.
package providers

import (
	"net/http"
	"sync"
	"time"

	"github.com/ajharbinger/ideascore/pkg/config"
)

// HTTPClient is the single pooled, rate-limited outbound client shared by every provider.
// Construct it once at startup and Close it on shutdown.
type HTTPClient struct {
	httpClient  *http.Client
	rateLimiter chan struct{}
	userAgent   string
	stop        chan struct{}
	closeOnce   sync.Once
}

// NewHTTPClient creates the pooled client with a token-bucket rate limiter
func NewHTTPClient(cfg config.HTTPConfig) *HTTPClient {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 20
	}

	// Fill the rate limiter initially
	rateLimiter := make(chan struct{}, rps)
	for i := 0; i < rps; i++ {
		rateLimiter <- struct{}{}
	}

	c := &HTTPClient{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        cfg.MaxIdleConns,
				MaxIdleConnsPerHost: cfg.MaxIdleConns,
				MaxConnsPerHost:     cfg.MaxConnsPerHost,
				IdleConnTimeout:     cfg.IdleConnTimeout,
			},
		},
		rateLimiter: rateLimiter,
		userAgent:   "ideascore/1.0",
		stop:        make(chan struct{}),
	}

	// Refill until Close
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(rps))
		defer ticker.Stop()

		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				select {
				case c.rateLimiter <- struct{}{}:
				default:
				}
			}
		}
	}()

	return c
}

// Do waits for a rate-limit token and performs the request. The request's context bounds the wait.
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	select {
	case <-c.rateLimiter:
	case <-req.Context().Done():
		return nil, req.Context().Err()
	}

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.httpClient.Do(req)
}

// Close stops the limiter and releases idle connections. Safe to call more than once.
func (c *HTTPClient) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
		c.httpClient.CloseIdleConnections()
	})
}
