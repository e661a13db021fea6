package providers

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// HealthMonitor tracks one provider's call outcomes and failure rate
type HealthMonitor struct {
	mu                   sync.RWMutex
	provider             string
	totalRequests        int64
	successfulRequests   int64
	failedRequests       int64
	consecutiveFailures  int64
	lastFailureTime      time.Time
	lastSuccessTime      time.Time
	recentFailures       []FailureRecord
	maxRecentFailures    int
	failureThreshold     float64 // Fraction of failed calls that marks the provider unhealthy
	consecutiveThreshold int64   // Max consecutive failures before alerting
}

// FailureRecord represents a single failed provider call
type FailureRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`
	Error     string    `json:"error"`
	URL       string    `json:"url,omitempty"`
}

// HealthStatus represents the current health of one provider
type HealthStatus struct {
	Provider            string          `json:"provider"`
	IsHealthy           bool            `json:"is_healthy"`
	TotalRequests       int64           `json:"total_requests"`
	SuccessfulRequests  int64           `json:"successful_requests"`
	FailedRequests      int64           `json:"failed_requests"`
	SuccessRate         float64         `json:"success_rate"`
	ConsecutiveFailures int64           `json:"consecutive_failures"`
	LastFailureTime     *time.Time      `json:"last_failure_time,omitempty"`
	LastSuccessTime     *time.Time      `json:"last_success_time,omitempty"`
	RecentFailures      []FailureRecord `json:"recent_failures"`
	HealthIssues        []string        `json:"health_issues"`
	RecommendedActions  []string        `json:"recommended_actions"`
}

// NewHealthMonitor creates a new health monitor for the named provider
func NewHealthMonitor(provider string) *HealthMonitor {
	return &HealthMonitor{
		provider:             provider,
		maxRecentFailures:    50,  // Keep last 50 failures
		failureThreshold:     0.2, // Alert if failure rate > 20%
		consecutiveThreshold: 5,   // Alert after 5 consecutive failures
		recentFailures:       make([]FailureRecord, 0, 50),
	}
}

// RecordSuccess records a successful provider call
func (h *HealthMonitor) RecordSuccess(query string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalRequests++
	h.successfulRequests++
	h.consecutiveFailures = 0
	h.lastSuccessTime = time.Now()
}

// RecordFailure records a failed provider call
func (h *HealthMonitor) RecordFailure(query, errorMsg, url string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalRequests++
	h.failedRequests++
	h.consecutiveFailures++
	h.lastFailureTime = time.Now()

	failure := FailureRecord{
		Timestamp: time.Now(),
		Query:     query,
		Error:     errorMsg,
		URL:       url,
	}

	h.recentFailures = append(h.recentFailures, failure)
	if len(h.recentFailures) > h.maxRecentFailures {
		h.recentFailures = h.recentFailures[1:]
	}
}

// GetHealthStatus returns the current health status
func (h *HealthMonitor) GetHealthStatus() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := HealthStatus{
		Provider:            h.provider,
		TotalRequests:       h.totalRequests,
		SuccessfulRequests:  h.successfulRequests,
		FailedRequests:      h.failedRequests,
		ConsecutiveFailures: h.consecutiveFailures,
		RecentFailures:      make([]FailureRecord, len(h.recentFailures)),
		HealthIssues:        []string{},
		RecommendedActions:  []string{},
	}

	copy(status.RecentFailures, h.recentFailures)

	if h.totalRequests > 0 {
		status.SuccessRate = float64(h.successfulRequests) / float64(h.totalRequests)
	} else {
		status.SuccessRate = 1.0
	}

	if !h.lastFailureTime.IsZero() {
		t := h.lastFailureTime
		status.LastFailureTime = &t
	}
	if !h.lastSuccessTime.IsZero() {
		t := h.lastSuccessTime
		status.LastSuccessTime = &t
	}

	status.IsHealthy = true

	if h.totalRequests >= 10 && status.SuccessRate < (1.0-h.failureThreshold) {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues,
			"High failure rate detected (>20%)")
		status.RecommendedActions = append(status.RecommendedActions,
			"Check "+h.provider+" connectivity and API key")
	}

	if h.consecutiveFailures >= h.consecutiveThreshold {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues,
			"Multiple consecutive failures detected")
		status.RecommendedActions = append(status.RecommendedActions,
			"Verify "+h.provider+" quota and rate limits")
	}

	h.analyzeFailurePatterns(&status)

	return status
}

// analyzeFailurePatterns looks for a dominant error type in recent failures
func (h *HealthMonitor) analyzeFailurePatterns(status *HealthStatus) {
	if len(h.recentFailures) < 3 {
		return
	}

	errorCounts := make(map[string]int)
	for _, failure := range h.recentFailures {
		errorCounts[categorizeError(failure.Error)]++
	}

	types := make([]string, 0, len(errorCounts))
	for errorType := range errorCounts {
		types = append(types, errorType)
	}
	sort.Strings(types)

	totalRecent := len(h.recentFailures)
	for _, errorType := range types {
		if float64(errorCounts[errorType])/float64(totalRecent) <= 0.5 {
			continue
		}
		switch errorType {
		case "timeout":
			status.HealthIssues = append(status.HealthIssues,
				"Frequent timeout errors detected")
			status.RecommendedActions = append(status.RecommendedActions,
				"Consider increasing provider timeouts or reducing concurrency")
		case "rate_limit":
			status.HealthIssues = append(status.HealthIssues,
				"Rate limiting detected")
			status.RecommendedActions = append(status.RecommendedActions,
				"Lower PROVIDER_REQUESTS_PER_SECOND or upgrade the provider plan")
		case "authentication":
			status.HealthIssues = append(status.HealthIssues,
				"Authentication errors detected")
			status.RecommendedActions = append(status.RecommendedActions,
				"Verify the "+h.provider+" API key and account status")
		case "network":
			status.HealthIssues = append(status.HealthIssues,
				"Network connectivity issues detected")
			status.RecommendedActions = append(status.RecommendedActions,
				"Check network connectivity and DNS resolution")
		case "parse":
			status.HealthIssues = append(status.HealthIssues,
				"Malformed provider responses detected")
			status.RecommendedActions = append(status.RecommendedActions,
				"Check whether the "+h.provider+" response format changed")
		}
	}
}

// categorizeError categorizes an error message into a type
func categorizeError(errorMsg string) string {
	errorMsg = strings.ToLower(errorMsg)

	if strings.Contains(errorMsg, "timeout") || strings.Contains(errorMsg, "deadline") {
		return "timeout"
	}
	if strings.Contains(errorMsg, "rate limit") || strings.Contains(errorMsg, "429") {
		return "rate_limit"
	}
	if strings.Contains(errorMsg, "unauthorized") || strings.Contains(errorMsg, "401") || strings.Contains(errorMsg, "403") {
		return "authentication"
	}
	if strings.Contains(errorMsg, "network") || strings.Contains(errorMsg, "connection") || strings.Contains(errorMsg, "dns") {
		return "network"
	}
	if strings.Contains(errorMsg, "parse_error") || strings.Contains(errorMsg, "decode") {
		return "parse"
	}

	return "other"
}

// Reset clears all health monitoring data
func (h *HealthMonitor) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalRequests = 0
	h.successfulRequests = 0
	h.failedRequests = 0
	h.consecutiveFailures = 0
	h.lastFailureTime = time.Time{}
	h.lastSuccessTime = time.Time{}
	h.recentFailures = h.recentFailures[:0]
}

// IsHealthy returns true if the provider is operating within healthy parameters
func (h *HealthMonitor) IsHealthy() bool {
	return h.GetHealthStatus().IsHealthy
}

// GetFailureRate returns the current failure rate as a fraction
func (h *HealthMonitor) GetFailureRate() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.totalRequests == 0 {
		return 0.0
	}

	return float64(h.failedRequests) / float64(h.totalRequests)
}

// HealthRegistry holds one HealthMonitor per provider
type HealthRegistry struct {
	mu       sync.Mutex
	monitors map[string]*HealthMonitor
}

// NewHealthRegistry creates an empty registry
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{monitors: make(map[string]*HealthMonitor)}
}

// Monitor returns the monitor for provider, creating it on first use
func (r *HealthRegistry) Monitor(provider string) *HealthMonitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.monitors[provider]
	if !ok {
		m = NewHealthMonitor(provider)
		r.monitors[provider] = m
	}
	return m
}

// Statuses returns every provider's status sorted by provider name
func (r *HealthRegistry) Statuses() []HealthStatus {
	r.mu.Lock()
	monitors := make([]*HealthMonitor, 0, len(r.monitors))
	for _, m := range r.monitors {
		monitors = append(monitors, m)
	}
	r.mu.Unlock()

	statuses := make([]HealthStatus, 0, len(monitors))
	for _, m := range monitors {
		statuses = append(statuses, m.GetHealthStatus())
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Provider < statuses[j].Provider })
	return statuses
}

// AllHealthy reports whether every registered provider is healthy
func (r *HealthRegistry) AllHealthy() bool {
	for _, s := range r.Statuses() {
		if !s.IsHealthy {
			return false
		}
	}
	return true
}

// ResetAll clears every monitor
func (r *HealthRegistry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.monitors {
		m.Reset()
	}
}
