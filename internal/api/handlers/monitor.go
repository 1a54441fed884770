package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/group-post-monitor/internal/control"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// MonitorController is the control surface the monitor endpoints drive.
type MonitorController interface {
	Start(ctx context.Context, s domain.Settings) (domain.Status, error)
	Stop() (domain.Status, error)
	Status() domain.Status
}

// MonitorHandler handles monitor start, stop, and status requests.
type MonitorHandler struct {
	ctl MonitorController
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(ctl MonitorController) *MonitorHandler {
	return &MonitorHandler{ctl: ctl}
}

// StartRequest is the monitor configuration submitted by a client.
type StartRequest struct {
	Groups         []string `json:"groups"                    minItems:"1"           doc:"Group ids to poll"`
	MinPrice       int      `json:"min_price"                 minimum:"0"            doc:"Lowest acceptable price, inclusive"                          example:"500"`
	MaxPrice       int      `json:"max_price"                 minimum:"0"            doc:"Highest acceptable price, inclusive"                         example:"1200"`
	Keywords       []string `json:"keywords,omitempty"        doc:"Every keyword must appear in the post, case-insensitively"`
	EmailSender    string   `json:"email_sender"              doc:"Address notifications are sent from and the SMTP login"      example:"me@example.com"`
	EmailReceiver  string   `json:"email_receiver"            doc:"Address notifications are sent to"                           example:"you@example.com"`
	SMTPServer     string   `json:"smtp_server,omitempty"     doc:"SMTP host (default smtp.gmail.com)"`
	SMTPPort       int      `json:"smtp_port,omitempty"       doc:"SMTP port (default 587)"                                     maximum:"65535"`
	EmailPassword  string   `json:"email_password,omitempty"  doc:"SMTP password"`
	CheckInterval  int      `json:"check_interval,omitempty"  doc:"Seconds between cycle starts (default 60)"                   minimum:"0"`
	Schedule       string   `json:"schedule,omitempty"        doc:"Cron expression that overrides check_interval"               example:"*/5 * * * *"`
	RunImmediately bool     `json:"run_immediately,omitempty" doc:"Run the first cycle right away instead of after one interval"`
}

// Settings converts the request into monitor settings.
func (r *StartRequest) Settings() domain.Settings {
	return domain.Settings{
		Groups: r.Groups,
		Criteria: domain.Criteria{
			MinPrice: r.MinPrice,
			MaxPrice: r.MaxPrice,
			Keywords: r.Keywords,
		},
		EmailSender:    r.EmailSender,
		EmailReceiver:  r.EmailReceiver,
		SMTPServer:     r.SMTPServer,
		SMTPPort:       r.SMTPPort,
		EmailPassword:  r.EmailPassword,
		CheckInterval:  time.Duration(r.CheckInterval) * time.Second,
		Schedule:       r.Schedule,
		RunImmediately: r.RunImmediately,
	}
}

// StartInput is the request for the start endpoint.
type StartInput struct {
	Body StartRequest
}

// StatusOutput is the response body for the monitor endpoints.
type StatusOutput struct {
	Body domain.Status
}

// Start validates the configuration, checks access, and starts monitoring.
func (h *MonitorHandler) Start(ctx context.Context, input *StartInput) (*StatusOutput, error) {
	st, err := h.ctl.Start(ctx, input.Body.Settings())
	if err != nil {
		return nil, controlError(err)
	}
	return &StatusOutput{Body: st}, nil
}

// Stop stops monitoring and waits for the loop to exit.
func (h *MonitorHandler) Stop(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	st, err := h.ctl.Stop()
	if err != nil {
		return nil, controlError(err)
	}
	return &StatusOutput{Body: st}, nil
}

// Status returns the current run state.
func (h *MonitorHandler) Status(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: h.ctl.Status()}, nil
}

// controlError maps control errors to HTTP problem responses.
func controlError(err error) error {
	switch {
	case errors.Is(err, control.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, control.ErrAlreadyRunning), errors.Is(err, control.ErrNotRunning):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, control.ErrAuthenticationRejected):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, control.ErrCredentialUnavailable):
		return huma.Error503ServiceUnavailable(err.Error())
	case errors.Is(err, control.ErrRateLimited):
		return huma.Error429TooManyRequests(err.Error())
	default:
		return huma.Error500InternalServerError("monitor control failed: " + err.Error())
	}
}

// RegisterMonitorRoutes registers the monitor control endpoints with the Huma API.
func RegisterMonitorRoutes(api huma.API, h *MonitorHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "start-monitor",
		Method:      http.MethodPost,
		Path:        "/api/v1/monitor/start",
		Summary:     "Start monitoring",
		Description: "Validates the configuration, loads the access token, checks every group " +
			"can be read, then starts the poll loop.",
		Tags: []string{"monitor"},
		Errors: []int{
			http.StatusUnauthorized,
			http.StatusConflict,
			http.StatusUnprocessableEntity,
			http.StatusTooManyRequests,
			http.StatusServiceUnavailable,
		},
	}, h.Start)

	huma.Register(api, huma.Operation{
		OperationID: "stop-monitor",
		Method:      http.MethodPost,
		Path:        "/api/v1/monitor/stop",
		Summary:     "Stop monitoring",
		Description: "Stops the poll loop and waits for it to exit. Last-seen state is discarded.",
		Tags:        []string{"monitor"},
		Errors:      []int{http.StatusConflict},
	}, h.Stop)

	huma.Register(api, huma.Operation{
		OperationID: "get-monitor-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/monitor/status",
		Summary:     "Get monitor status",
		Description: "Returns whether the monitor is running along with cycle and notification counters.",
		Tags:        []string{"monitor"},
	}, h.Status)
}
