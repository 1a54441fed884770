// Package monitor runs the poll, filter, and notify loop over a fixed set of
// groups.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/group-post-monitor/internal/graph"
	"github.com/donaldgifford/group-post-monitor/internal/metrics"
	"github.com/donaldgifford/group-post-monitor/internal/notify"
	"github.com/donaldgifford/group-post-monitor/pkg/filter"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// ErrAlreadyRunning is returned by Start and RunCycle while the loop is
// running.
var ErrAlreadyRunning = errors.New("monitor already running")

const defaultTickInterval = time.Second

// Monitor owns one background loop at a time. Each run starts with empty
// per-group watermarks.
type Monitor struct {
	settings domain.Settings
	source   graph.FeedSource
	notifier notify.Notifier
	schedule cron.Schedule
	log      *slog.Logger
	tick     time.Duration
	now      func() time.Time

	// filter is only touched by the loop goroutine while running, and by
	// RunCycle while stopped.
	filter *filter.Filter

	mu                sync.Mutex
	cancel            context.CancelFunc
	done              chan struct{}
	startedAt         time.Time
	lastCycleAt       time.Time
	nextCycleAt       time.Time
	cyclesCompleted   int64
	notificationsSent int64
}

// Option configures the Monitor.
type Option func(*Monitor)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) {
		m.log = l
	}
}

// WithTickInterval sets how often the loop checks whether a cycle is due.
func WithTickInterval(d time.Duration) Option {
	return func(m *Monitor) {
		m.tick = d
	}
}

// WithNowFunc overrides the clock used for scheduling.
func WithNowFunc(f func() time.Time) Option {
	return func(m *Monitor) {
		m.now = f
	}
}

// New creates a stopped Monitor. It fails only if the settings describe an
// unusable schedule.
func New(
	settings domain.Settings,
	source graph.FeedSource,
	notifier notify.Notifier,
	opts ...Option,
) (*Monitor, error) {
	sched, err := ParseSchedule(&settings)
	if err != nil {
		return nil, err
	}

	settings.Groups = slices.Clone(settings.Groups)
	settings.Criteria.Keywords = slices.Clone(settings.Criteria.Keywords)

	m := &Monitor{
		settings: settings,
		source:   source,
		notifier: notifier,
		schedule: sched,
		log:      slog.Default(),
		tick:     defaultTickInterval,
		now:      time.Now,
		filter:   filter.New(settings.Criteria),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Start launches the background loop. It returns ErrAlreadyRunning if a
// loop is running or still being stopped.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	now := m.now()
	next := now
	if !m.settings.RunImmediately {
		next = m.schedule.Next(now)
	}

	m.filter = filter.New(m.settings.Criteria)
	m.cancel = cancel
	m.done = done
	m.startedAt = now
	m.lastCycleAt = time.Time{}
	m.nextCycleAt = next
	m.cyclesCompleted = 0
	m.notificationsSent = 0

	metrics.MonitorRunning.Set(1)
	metrics.NextCycleTimestamp.Set(float64(next.Unix()))
	m.log.Info("monitor started",
		"groups", m.settings.Groups,
		"min_price", m.settings.Criteria.MinPrice,
		"max_price", m.settings.Criteria.MaxPrice,
		"keywords", m.settings.Criteria.Keywords,
		"next_cycle", next,
	)

	go m.loop(ctx, done, next)
	return nil
}

// Stop cancels the loop and blocks until it has exited. No notification is
// sent after Stop returns. Stop on a stopped Monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	m.mu.Lock()
	if m.done == done {
		m.cancel = nil
		m.done = nil
		m.nextCycleAt = time.Time{}
	}
	m.mu.Unlock()

	metrics.MonitorRunning.Set(0)
	m.log.Info("monitor stopped")
}

// Running reports whether a loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

// Settings returns a copy of the settings the monitor was created with.
func (m *Monitor) Settings() domain.Settings {
	s := m.settings
	s.Groups = slices.Clone(s.Groups)
	s.Criteria.Keywords = slices.Clone(s.Criteria.Keywords)
	return s
}

// Status returns a snapshot of the run state.
func (m *Monitor) Status() domain.Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := domain.Status{
		Running:           m.cancel != nil,
		Groups:            slices.Clone(m.settings.Groups),
		CyclesCompleted:   m.cyclesCompleted,
		NotificationsSent: m.notificationsSent,
	}
	if !m.startedAt.IsZero() {
		st.StartedAt = timePtr(m.startedAt)
	}
	if !m.lastCycleAt.IsZero() {
		st.LastCycleAt = timePtr(m.lastCycleAt)
	}
	if !m.nextCycleAt.IsZero() {
		st.NextCycleAt = timePtr(m.nextCycleAt)
	}
	return st
}

// RunCycle runs a single cycle in the caller's goroutine using the current
// watermarks. It returns ErrAlreadyRunning while the loop is running.
func (m *Monitor) RunCycle(ctx context.Context) (CycleResult, error) {
	if m.Running() {
		return CycleResult{}, ErrAlreadyRunning
	}
	res := m.runCycle(ctx)
	m.recordCycle(m.now(), time.Time{}, res)
	return res, nil
}

func (m *Monitor) loop(ctx context.Context, done chan<- struct{}, next time.Time) {
	defer close(done)

	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}

		if now := m.now(); !now.Before(next) {
			res := m.runCycle(ctx)
			next = m.schedule.Next(now)
			m.recordCycle(m.now(), next, res)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) recordCycle(at, next time.Time, res CycleResult) {
	m.mu.Lock()
	m.lastCycleAt = at
	if !next.IsZero() {
		m.nextCycleAt = next
	}
	m.cyclesCompleted++
	m.notificationsSent += int64(res.Sent)
	m.mu.Unlock()

	metrics.CyclesTotal.Inc()
	metrics.LastCycleTimestamp.Set(float64(at.Unix()))
	if !next.IsZero() {
		metrics.NextCycleTimestamp.Set(float64(next.Unix()))
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
