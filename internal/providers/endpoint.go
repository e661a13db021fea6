package providers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/ajharbinger/ideascore/internal/errors"
	"github.com/ajharbinger/ideascore/internal/logger"
)

const maxResponseBytes = 4 << 20

// endpoint carries what every provider call needs: the shared client, its per-call timeout,
// the retry policy and the provider's health monitor
type endpoint struct {
	name    string
	client  *HTTPClient
	timeout time.Duration
	retry   RetryPolicy
	health  *HealthMonitor
	logger  logger.Logger
}

func newEndpoint(name string, client *HTTPClient, timeout time.Duration, retry RetryPolicy, health *HealthRegistry, log logger.Logger) endpoint {
	if log == nil {
		log = logger.Discard()
	}
	if health == nil {
		health = NewHealthRegistry()
	}
	return endpoint{
		name:    name,
		client:  client,
		timeout: timeout,
		retry:   retry,
		health:  health.Monitor(name),
		logger:  log.With("provider", name),
	}
}

// callJSON performs build's request with retry and decodes a 2xx JSON body into out
func (e endpoint) callJSON(ctx context.Context, query string, build func(ctx context.Context) (*http.Request, error), out interface{}) error {
	var lastURL string

	attempts, err := e.retry.Execute(ctx, func(ctx context.Context) (time.Duration, error) {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		req, err := build(callCtx)
		if err != nil {
			return 0, errors.PermanentError("failed to create request", err).WithOperation(e.name)
		}
		lastURL = req.URL.Host + req.URL.Path

		resp, err := e.client.Do(req)
		if err != nil {
			return 0, classifyTransportError(e.name, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return 0, classifyTransportError(e.name, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return parseRetryAfter(resp.Header.Get("Retry-After")),
				errors.FromStatus(resp.StatusCode, fmt.Sprintf("%s returned status %d", e.name, resp.StatusCode)).
					WithOperation(e.name).
					WithDetails(truncateBody(body))
		}

		if len(body) == 0 {
			return 0, errors.ParseError(e.name+" returned an empty body", nil).WithOperation(e.name)
		}
		if err := json.Unmarshal(body, out); err != nil {
			return 0, errors.ParseError("failed to decode "+e.name+" response", err).WithOperation(e.name)
		}
		return 0, nil
	})

	if err != nil {
		e.health.RecordFailure(query, err.Error(), lastURL)
		e.logger.Warn("provider call failed", "query", query, "attempts", attempts, "error", err.Error())
		return err
	}

	e.health.RecordSuccess(query)
	e.logger.Debug("provider call succeeded", "query", query, "attempts", attempts)
	return nil
}

func classifyTransportError(provider string, err error) error {
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.TransientError(provider+" request timeout", err)
	case stderrors.Is(err, context.Canceled):
		return errors.PermanentError(provider+" request canceled", err)
	case stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.TransientError(provider+" request timeout", err)
	default:
		return errors.TransientError(provider+" connection error", err)
	}
}

func truncateBody(body []byte) string {
	const max = 300
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
