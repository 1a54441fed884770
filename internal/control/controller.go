// Package control is the control surface for the monitor: it validates
// settings, checks the credential and group access, and starts or stops the
// monitor loop.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/donaldgifford/group-post-monitor/internal/config"
	"github.com/donaldgifford/group-post-monitor/internal/graph"
	"github.com/donaldgifford/group-post-monitor/internal/monitor"
	"github.com/donaldgifford/group-post-monitor/internal/notify"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// Source is a feed source that can also verify group access.
type Source interface {
	graph.FeedSource
	graph.AccessChecker
}

// SourceFactory builds a Source authenticated with token.
type SourceFactory func(token string) Source

// NotifierFactory builds the Notifier for a monitor run.
type NotifierFactory func(s *domain.Settings) notify.Notifier

// Controller owns at most one Monitor at a time.
type Controller struct {
	credentialsFile string
	newSource       SourceFactory
	newNotifier     NotifierFactory
	monitorOpts     []monitor.Option
	log             *slog.Logger

	mu       sync.Mutex
	mon      *monitor.Monitor
	starting bool
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithMonitorOptions sets options passed to every Monitor the controller
// creates.
func WithMonitorOptions(opts ...monitor.Option) Option {
	return func(c *Controller) {
		c.monitorOpts = append(c.monitorOpts, opts...)
	}
}

// New creates a Controller that reads the access token from
// credentialsFile on every start.
func New(
	credentialsFile string,
	newSource SourceFactory,
	newNotifier NotifierFactory,
	opts ...Option,
) *Controller {
	c := &Controller{
		credentialsFile: credentialsFile,
		newSource:       newSource,
		newNotifier:     newNotifier,
		log:             slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate normalizes s and reports whether it can be used to start a
// monitor. Failures wrap ErrInvalidInput.
func (c *Controller) Validate(s domain.Settings) (domain.Settings, error) {
	s = Normalize(s)

	errs := []error{s.Validate()}
	if s.Schedule != "" {
		if _, err := monitor.ParseSchedule(&s); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s, nil
}

// Check loads the credential and verifies that every group's feed can be
// read. It returns the authenticated source on success.
func (c *Controller) Check(ctx context.Context, groups []string) (Source, error) {
	token, err := config.LoadAccessToken(c.credentialsFile)
	if err != nil {
		c.log.Error("loading access token failed", "file", c.credentialsFile, "error", err)
		return nil, err
	}

	src := c.newSource(token)
	for _, g := range groups {
		if err := src.CheckAccess(ctx, g); err != nil {
			c.log.Error("group access check failed", "group", g, "error", err)
			if errors.Is(err, ErrRateLimited) {
				return nil, fmt.Errorf("checking group %s: %w", g, err)
			}
			return nil, fmt.Errorf("%w for group %s: %w", ErrAuthenticationRejected, g, err)
		}
	}
	return src, nil
}

// Start validates s, checks the credential and group access, and launches
// a new monitor. Any failure leaves the controller stopped.
func (c *Controller) Start(ctx context.Context, s domain.Settings) (domain.Status, error) {
	s, err := c.Validate(s)
	if err != nil {
		return domain.Status{}, err
	}

	if err := c.reserve(); err != nil {
		return domain.Status{}, err
	}
	defer c.release()

	src, err := c.Check(ctx, s.Groups)
	if err != nil {
		return domain.Status{}, err
	}

	mon, err := monitor.New(s, src, c.newNotifier(&s), c.monitorOptions()...)
	if err != nil {
		return domain.Status{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := mon.Start(); err != nil {
		return domain.Status{}, err
	}

	c.mu.Lock()
	c.mon = mon
	c.mu.Unlock()

	return mon.Status(), nil
}

// Stop stops the running monitor and waits for its loop to exit. It returns
// ErrNotRunning when no monitor is running.
func (c *Controller) Stop() (domain.Status, error) {
	c.mu.Lock()
	mon := c.mon
	c.mu.Unlock()

	if mon == nil || !mon.Running() {
		return c.Status(), ErrNotRunning
	}
	mon.Stop()
	return mon.Status(), nil
}

// Status returns a snapshot of the current or most recent monitor run.
func (c *Controller) Status() domain.Status {
	c.mu.Lock()
	mon := c.mon
	c.mu.Unlock()

	if mon == nil {
		return domain.Status{}
	}
	return mon.Status()
}

// Running reports whether a monitor loop is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	mon := c.mon
	c.mu.Unlock()
	return mon != nil && mon.Running()
}

// RunOnce validates s, checks access, and runs a single cycle in the
// caller's goroutine. It refuses while a monitor is running.
func (c *Controller) RunOnce(ctx context.Context, s domain.Settings) (monitor.CycleResult, error) {
	s, err := c.Validate(s)
	if err != nil {
		return monitor.CycleResult{}, err
	}

	if err := c.reserve(); err != nil {
		return monitor.CycleResult{}, err
	}
	defer c.release()

	src, err := c.Check(ctx, s.Groups)
	if err != nil {
		return monitor.CycleResult{}, err
	}

	mon, err := monitor.New(s, src, c.newNotifier(&s), c.monitorOptions()...)
	if err != nil {
		return monitor.CycleResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return mon.RunCycle(ctx)
}

// reserve marks a start in progress so concurrent starts are rejected
// while the precheck runs.
func (c *Controller) reserve() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.starting || (c.mon != nil && c.mon.Running()) {
		return ErrAlreadyRunning
	}
	c.starting = true
	return nil
}

func (c *Controller) release() {
	c.mu.Lock()
	c.starting = false
	c.mu.Unlock()
}

func (c *Controller) monitorOptions() []monitor.Option {
	return append([]monitor.Option{monitor.WithLogger(c.log)}, c.monitorOpts...)
}
