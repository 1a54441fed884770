package client

import (
	"context"
	"time"

	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// StartRequest is the monitor configuration sent to the start endpoint.
// CheckInterval is expressed in seconds.
type StartRequest struct {
	Groups         []string `json:"groups"`
	MinPrice       int      `json:"min_price"`
	MaxPrice       int      `json:"max_price"`
	Keywords       []string `json:"keywords,omitempty"`
	EmailSender    string   `json:"email_sender"`
	EmailReceiver  string   `json:"email_receiver"`
	SMTPServer     string   `json:"smtp_server,omitempty"`
	SMTPPort       int      `json:"smtp_port,omitempty"`
	EmailPassword  string   `json:"email_password,omitempty"`
	CheckInterval  int      `json:"check_interval,omitempty"`
	Schedule       string   `json:"schedule,omitempty"`
	RunImmediately bool     `json:"run_immediately,omitempty"`
}

// Quota is the Graph API budget reported by the server.
type Quota struct {
	HourlyLimit int64      `json:"hourly_limit"`
	HourlyUsed  int64      `json:"hourly_used"`
	Remaining   int64      `json:"remaining"`
	ResetAt     *time.Time `json:"reset_at,omitempty"`
}

// StartMonitor submits a configuration and starts monitoring.
func (c *Client) StartMonitor(ctx context.Context, req *StartRequest) (*domain.Status, error) {
	var st domain.Status
	if err := c.post(ctx, "/api/v1/monitor/start", req, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// StopMonitor stops monitoring.
func (c *Client) StopMonitor(ctx context.Context) (*domain.Status, error) {
	var st domain.Status
	if err := c.post(ctx, "/api/v1/monitor/stop", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// MonitorStatus returns the current run state.
func (c *Client) MonitorStatus(ctx context.Context) (*domain.Status, error) {
	var st domain.Status
	if err := c.get(ctx, "/api/v1/monitor/status", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetQuota returns the Graph API quota status.
func (c *Client) GetQuota(ctx context.Context) (*Quota, error) {
	var q Quota
	if err := c.get(ctx, "/api/v1/quota", &q); err != nil {
		return nil, err
	}
	return &q, nil
}
