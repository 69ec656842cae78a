// Package httpretry wraps an HTTP client with bounded retries, exponential
// backoff, and jitter for transient failures against external APIs.
//
// Retries happen only for transport errors and retryable status codes
// (429, 5xx). POSTs that create remote entities must NOT go through a
// retrying client; the launch orchestrator calls those with a plain
// http.Client to avoid duplicate entities.
package httpretry

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPDoer is satisfied by *http.Client and *RetryClient alike.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryClient retries transient failures with exponential backoff and jitter.
type RetryClient struct {
	client     HTTPDoer
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// NewRetryClient wraps client with retry logic. A nil client gets a default
// http.Client with a 30s timeout; maxRetries <= 0 defaults to 3.
func NewRetryClient(client HTTPDoer, maxRetries int) *RetryClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &RetryClient{
		client:     client,
		maxRetries: maxRetries,
		baseDelay:  time.Second,
		maxDelay:   30 * time.Second,
	}
}

// Do executes the request, retrying on retryable statuses and transport
// errors. The final attempt's response is returned as-is so the caller can
// read the body. Context cancellation is never retried.
func (rc *RetryClient) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= rc.maxRetries; attempt++ {
		if req.Context().Err() != nil {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, req.Context().Err()
		}

		if attempt > 0 {
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("httpretry: reset request body: %w", err)
				}
				req.Body = body
			}

			delay := rc.delay(attempt)
			logrus.WithFields(logrus.Fields{
				"attempt": attempt,
				"max":     rc.maxRetries,
				"method":  req.Method,
				"host":    req.URL.Host,
				"wait":    delay.String(),
			}).Warn("httpretry: retrying request")

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-req.Context().Done():
				timer.Stop()
				if lastErr != nil {
					return nil, lastErr
				}
				return nil, req.Context().Err()
			}
		}

		resp, err := rc.client.Do(req)
		if err != nil {
			lastErr = err
			if req.Context().Err() != nil {
				return nil, err
			}
			continue
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if attempt == rc.maxRetries {
			return resp, nil
		}

		// Drain for connection reuse before the next attempt.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("httpretry: retryable status %d", resp.StatusCode)
	}

	return nil, lastErr
}

func (rc *RetryClient) delay(attempt int) time.Duration {
	d := time.Duration(float64(rc.baseDelay) * math.Pow(2, float64(attempt-1)))
	if d > rc.maxDelay {
		d = rc.maxDelay
	}
	// Up to 25% jitter so synchronized callers spread out.
	jitter := time.Duration(rand.Int63n(int64(d) / 4))
	return d + jitter
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
