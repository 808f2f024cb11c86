package actions

// Transport layer for the GitHub Actions API. Wraps go-github with a rate
// limiter, a circuit breaker and retries so pagination over large orgs
// survives 429s and transient 5xx responses.

import (
	"context"
	"fmt"
	"time"

	logging "actions-graph/internal/infra/log"
	"actions-graph/internal/infra/retry"

	"github.com/google/go-github/v50/github"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	perPage           = 100
	requestsPerSecond = 10
	requestBurst      = 20

	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 30 * time.Second
)

// Client wraps an authenticated go-github client.
type Client struct {
	gh             *github.Client
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	maxRetries     int
}

// NewClient builds a client for github.com, or for a GitHub Enterprise
// instance when apiURL is set. An empty token means unauthenticated access.
func NewClient(ctx context.Context, token, apiURL string, maxRetries int) (*Client, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))

	gh := github.NewClient(httpClient)
	if apiURL != "" {
		var err error
		gh, err = github.NewEnterpriseClient(apiURL, "", httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create enterprise client: %w", err)
		}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GitHubAPI",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		gh:             gh,
		rateLimiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		circuitBreaker: breaker,
		maxRetries:     maxRetries,
	}, nil
}

// call runs one API request through the limiter, breaker and retry policy.
// fn must be safe to invoke multiple times.
func (c *Client) call(ctx context.Context, name string, fn func() (*github.Response, error)) error {
	opts := retry.Options{
		MaxRetries: c.maxRetries,
		BaseDelay:  retryBaseDelay,
		MaxDelay:   retryMaxDelay,
	}

	return retry.Do(ctx, opts, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}

		_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			resp, err := fn()
			if err != nil {
				return nil, asRetryError(resp, err)
			}
			if resp != nil && resp.Rate.Limit > 0 && resp.Rate.Remaining == 0 {
				return nil, fmt.Errorf("github API rate limit exhausted, resets at %s", resp.Rate.Reset.Format(time.RFC3339))
			}
			return nil, nil
		})
		if err != nil {
			logging.LogWarn("github API call failed",
				zap.String("call", name),
				zap.Error(err))
		}
		return err
	})
}

// asRetryError converts a failed go-github response so the retry policy can
// see the status code and any Retry-After hint.
func asRetryError(resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return err
	}
	return &retry.HTTPError{
		StatusCode: resp.StatusCode,
		Message:    err.Error(),
		RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
	}
}
