// Package graph provides a Graph API group feed client abstracted behind
// interfaces for testability.
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

const defaultBaseURL = "https://graph.facebook.com/v12.0"

// FeedSource fetches the current page of a group's feed.
type FeedSource interface {
	Feed(ctx context.Context, groupID string) ([]domain.Post, error)
}

// AccessChecker verifies that a group's feed can be read with the current
// credential.
type AccessChecker interface {
	CheckAccess(ctx context.Context, groupID string) error
}

// APIError is returned when the Graph API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("graph API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("graph API error (status %d): %s", e.StatusCode, body)
}

// Client implements FeedSource and AccessChecker against the Graph API.
type Client struct {
	token       string
	baseURL     string
	client      *http.Client
	rateLimiter *RateLimiter
	log         *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default Graph API base URL, including the
// version segment.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and hourly
// API call limits. When set, every request goes through Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a Graph API client that authenticates with token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RateLimiter returns the client's rate limiter, or nil if none is set.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}
