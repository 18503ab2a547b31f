package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-log/internal/weather"
)

// HTTPClientConfig bundles the HTTP client and the identifying header sent upstream.
type HTTPClientConfig struct {
	Client    *http.Client
	UserAgent string
}

var (
	// ErrUpstreamUnavailable is returned while the circuit breaker is open.
	// It also matches weather.ErrNotFound: no request was made for the date.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	errNoHTTPClient = errors.New("http client not configured")
	errNoUserAgent  = errors.New("user agent not configured")
)

// StatusError reports a non-200 upstream response.
// It matches weather.ErrNotFound so report callers treat it as a missing date.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Is(target error) bool {
	return target == weather.ErrNotFound
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
}

// doRequest executes exactly one attempt of the request behind the circuit breaker.
// Only transport errors count against the breaker. Any non-200 status is returned
// as *StatusError with the body already closed.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.UserAgent == "" {
		return nil, errNoUserAgent
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	result, err := cb.Execute(func() (interface{}, error) {
		return cfg.Client.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w (%v): %w", ErrUpstreamUnavailable, err, weather.ErrNotFound)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}
