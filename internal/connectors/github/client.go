package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/reposearch/internal/core/ports/driven"
	"github.com/custodia-labs/reposearch/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPerPage is the page size used when Config leaves it unset.
	DefaultPerPage = 30
)

var log = logger.Named("github")

// Client wraps the go-github client with rate limiting and error mapping.
type Client struct {
	cfg           Config
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
	baseHTTP      *http.Client

	mu    sync.Mutex
	gh    *gh.Client
	token string
}

// NewClient creates a GitHub API client.
// tokenProvider may be nil for unauthenticated access.
func NewClient(cfg Config, tokenProvider driven.TokenProvider) *Client {
	return NewClientWithHTTPClient(cfg, tokenProvider, nil)
}

// NewClientWithHTTPClient creates a GitHub client that sends requests
// through httpClient. Tests use it to point the client at a local server.
func NewClientWithHTTPClient(cfg Config, tokenProvider driven.TokenProvider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	}
	return &Client{
		cfg:           cfg,
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(cfg.RequestsPerMinute),
		baseHTTP:      httpClient,
	}
}

// ensureClient returns a go-github client for the current token.
// The client is rebuilt whenever the token changes, so a token set while
// the process runs takes effect on the next request.
func (c *Client) ensureClient(ctx context.Context) (*gh.Client, error) {
	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gh != nil && token == c.token {
		return c.gh, nil
	}

	base, err := c.cfg.baseURL()
	if err != nil {
		return nil, err
	}

	httpClient := c.baseHTTP
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(context.WithValue(context.Background(), oauth2.HTTPClient, c.baseHTTP), ts)
		tc.Timeout = c.baseHTTP.Timeout
		httpClient = tc
	}

	client := gh.NewClient(httpClient)
	client.BaseURL = base

	c.gh = client
	c.token = token
	log.Debug("client ready (base=%s authenticated=%t)", base, token != "")
	return client, nil
}

func (c *Client) currentToken(ctx context.Context) (string, error) {
	if c.tokenProvider == nil || !c.tokenProvider.IsAuthenticated() {
		return "", nil
	}
	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// SearchRepositories runs one repository search request for the given
// 1-based page.
func (c *Client) SearchRepositories(ctx context.Context, query string, page int) ([]*gh.Repository, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		var rl *RateLimitError
		if errors.As(err, &rl) {
			log.Info("quota exhausted, not sending request (resets in %s)", rl.RetryAfter(time.Now()).Round(time.Second))
			return nil, err
		}
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{Page: page, PerPage: c.cfg.PerPage},
	}

	log.Debug("search repositories q=%q page=%d per_page=%d", query, page, c.cfg.PerPage)
	result, resp, err := client.Search.Repositories(ctx, query, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "search repositories")
	}

	return result.Repositories, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// PerPage returns the configured page size.
func (c *Client) PerPage() int {
	return c.cfg.PerPage
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
	log.Debug("rate limit: remaining=%d limit=%d reset=%s",
		c.rateLimiter.Remaining(), c.rateLimiter.Limit(), c.rateLimiter.ResetTime().Format(time.RFC3339))
}

// wrapError converts go-github errors to our error types.
// 403 and 429 responses are treated as quota exhaustion.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return c.rateLimiter.LimitError()
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		status := ghErr.Response.StatusCode
		if status == http.StatusForbidden || status == http.StatusTooManyRequests {
			return c.rateLimiter.LimitError()
		}
		apiErr := &APIError{
			StatusCode: status,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
