// Package domain defines the core business types for the group post monitor.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default values suggested to users for optional settings.
const (
	DefaultSMTPServer    = "smtp.gmail.com"
	DefaultSMTPPort      = 587
	DefaultCheckInterval = 60 * time.Second
)

// Post is a single group feed item as returned by the feed source.
type Post struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	Message     string    `json:"message,omitempty"`
	HasMessage  bool      `json:"has_message"`
	CreatedTime time.Time `json:"created_time"`
}

// URL returns the public link to the post.
func (p *Post) URL() string {
	return "https://facebook.com/" + p.ID
}

// Criteria is the set of predicates a post must satisfy to be reported.
type Criteria struct {
	MinPrice int      `json:"min_price"`
	MaxPrice int      `json:"max_price"`
	Keywords []string `json:"keywords,omitempty"`
}

// Settings is the full monitoring configuration for one monitor run.
// It is treated as immutable once a monitor has been started with it.
type Settings struct {
	Groups   []string `json:"groups"`
	Criteria Criteria `json:"criteria"`

	EmailSender   string `json:"email_sender"`
	EmailReceiver string `json:"email_receiver"`
	SMTPServer    string `json:"smtp_server"`
	SMTPPort      int    `json:"smtp_port"`
	EmailPassword string `json:"-"`

	CheckInterval  time.Duration `json:"check_interval"`
	Schedule       string        `json:"schedule,omitempty"` // cron expression, overrides CheckInterval
	RunImmediately bool          `json:"run_immediately"`
}

// ApplyDefaults fills zero-valued optional fields with their defaults.
func (s *Settings) ApplyDefaults() {
	if s.SMTPServer == "" {
		s.SMTPServer = DefaultSMTPServer
	}
	if s.SMTPPort == 0 {
		s.SMTPPort = DefaultSMTPPort
	}
	if s.CheckInterval == 0 {
		s.CheckInterval = DefaultCheckInterval
	}
}

// Validate reports every rule the settings violate.
func (s *Settings) Validate() error {
	var errs []error

	if len(s.Groups) == 0 {
		errs = append(errs, errors.New("at least one group is required"))
	}
	for _, g := range s.Groups {
		if strings.TrimSpace(g) == "" {
			errs = append(errs, errors.New("group ids must not be blank"))
			break
		}
	}
	if s.Criteria.MinPrice < 0 {
		errs = append(errs, fmt.Errorf("min price must not be negative (got %d)", s.Criteria.MinPrice))
	}
	if s.Criteria.MinPrice > s.Criteria.MaxPrice {
		errs = append(errs, fmt.Errorf(
			"min price %d must not exceed max price %d",
			s.Criteria.MinPrice, s.Criteria.MaxPrice,
		))
	}
	if s.EmailSender == "" {
		errs = append(errs, errors.New("email sender is required"))
	}
	if s.EmailReceiver == "" {
		errs = append(errs, errors.New("email receiver is required"))
	}
	if s.SMTPServer == "" {
		errs = append(errs, errors.New("smtp server is required"))
	}
	if s.SMTPPort <= 0 || s.SMTPPort > 65535 {
		errs = append(errs, fmt.Errorf("smtp port must be between 1 and 65535 (got %d)", s.SMTPPort))
	}
	if s.Schedule == "" && s.CheckInterval < time.Second {
		errs = append(errs, fmt.Errorf("check interval must be at least 1s (got %s)", s.CheckInterval))
	}

	return errors.Join(errs...)
}

// Status is a read-only snapshot of a monitor's run state.
type Status struct {
	Running           bool       `json:"running"`
	Groups            []string   `json:"groups,omitempty"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	LastCycleAt       *time.Time `json:"last_cycle_at,omitempty"`
	NextCycleAt       *time.Time `json:"next_cycle_at,omitempty"`
	CyclesCompleted   int64      `json:"cycles_completed"`
	NotificationsSent int64      `json:"notifications_sent"`
}
