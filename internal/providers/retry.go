package providers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ajharbinger/ideascore/internal/errors"
	"github.com/ajharbinger/ideascore/pkg/config"
)

// Upper bound on a server-requested Retry-After wait
const maxRetryAfter = 10 * time.Second

// RetryPolicy is the bounded retry applied to every provider call
type RetryPolicy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Retryable      func(status int) bool
}

// Attempt performs one provider call. retryAfter is the server's Retry-After hint, if any.
type Attempt func(ctx context.Context) (retryAfter time.Duration, err error)

// NewRetryPolicy builds the policy from configuration with the default status predicate
func NewRetryPolicy(cfg config.RetryConfig) RetryPolicy {
	return RetryPolicy{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Retryable:      IsRetryableStatus,
	}
}

// NoRetry is a policy that performs exactly one attempt
func NoRetry() RetryPolicy {
	return RetryPolicy{Retryable: IsRetryableStatus}
}

// IsRetryableStatus reports whether an HTTP status is worth retrying.
// 400, 401, 402, 403, 404 and 422 fail immediately.
func IsRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Backoff returns the delay before retry number attempt (0-based): initial*2^attempt, capped at MaxBackoff
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := p.InitialBackoff
	for i := 0; i < attempt; i++ {
		d *= 2
		if p.MaxBackoff > 0 && d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}

// Execute runs attempt until it succeeds, fails permanently or the retry budget is spent.
// It returns the number of attempts made and the last error.
func (p RetryPolicy) Execute(ctx context.Context, attempt Attempt) (int, error) {
	attempts := 0
	for {
		attempts++
		retryAfter, err := attempt(ctx)
		if err == nil {
			return attempts, nil
		}
		if ctx.Err() != nil || attempts > p.MaxRetries || !p.shouldRetry(err) {
			return attempts, err
		}

		delay := p.Backoff(attempts - 1)
		if errors.StatusCode(err) == http.StatusTooManyRequests && retryAfter > 0 {
			delay = min(retryAfter, maxRetryAfter)
		}
		if sleepErr := sleepCtx(ctx, delay); sleepErr != nil {
			return attempts, err
		}
	}
}

func (p RetryPolicy) shouldRetry(err error) bool {
	if status := errors.StatusCode(err); status != 0 {
		retryable := p.Retryable
		if retryable == nil {
			retryable = IsRetryableStatus
		}
		return retryable(status)
	}
	// Timeouts and connection failures carry no status
	return errors.IsRetryable(err)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func parseRetryAfter(v string) time.Duration {
	if strings.TrimSpace(v) == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
