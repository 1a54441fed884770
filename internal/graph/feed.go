package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/donaldgifford/group-post-monitor/internal/metrics"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// maxErrorBody caps how much of a failed response body is kept in APIError.
const maxErrorBody = 4 << 10

type feedResponse struct {
	Data []FeedItem `json:"data"`
}

// Feed implements FeedSource.Feed by requesting the group's feed edge.
func (c *Client) Feed(ctx context.Context, groupID string) ([]domain.Post, error) {
	body, err := c.get(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var resp feedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing feed response: %w", err)
	}

	posts, skipped := ToPosts(groupID, resp.Data)
	if skipped > 0 {
		c.log.Warn("skipped feed items without a usable created_time",
			"group", groupID, "skipped", skipped)
	}
	return posts, nil
}

// CheckAccess issues a single feed request and succeeds only on a 2xx
// response. The body is not interpreted.
func (c *Client) CheckAccess(ctx context.Context, groupID string) error {
	_, err := c.get(ctx, groupID)
	return err
}

func (c *Client) get(ctx context.Context, groupID string) ([]byte, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrHourlyLimitReached) {
				metrics.GraphHourlyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.GraphHourlyUsage.Set(float64(c.rateLimiter.HourlyCount()))
	}
	metrics.GraphAPICallsTotal.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL(groupID), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.GraphAPIErrorsTotal.WithLabelValues("transport").Inc()
		return nil, fmt.Errorf("executing feed request: %w", redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.GraphAPIErrorsTotal.WithLabelValues(statusClass(resp.StatusCode)).Inc()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

func (c *Client) feedURL(groupID string) string {
	params := url.Values{}
	params.Set("access_token", c.token)
	return c.baseURL + "/" + url.PathEscape(groupID) + "/feed?" + params.Encode()
}

// redact strips the request URL from transport errors so the access token
// never reaches the logs.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
