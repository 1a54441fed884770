package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrHourlyLimitReached is returned when the hourly API call budget has been
// exhausted.
var ErrHourlyLimitReached = errors.New("hourly API limit reached")

const window = time.Hour

// RateLimiter controls API call rate and hourly usage.
// It uses a token bucket for per-second rate limiting and a rolling
// one-hour window for the application call budget.
type RateLimiter struct {
	limiter     *rate.Limiter
	hourly      atomic.Int64
	maxHourly   int64
	windowStart time.Time
	resetAt     time.Time
	mu          sync.Mutex
	nowFunc     func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size, and hourly budget. A budget of zero or less disables the
// hourly cap. The window resets one hour after it opened.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxHourly int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burst),
		maxHourly: max(maxHourly, 0),
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	now := r.nowFunc()
	r.windowStart = now
	r.resetAt = now.Add(window)
	return r
}

// Wait blocks until the rate limiter allows the call, or the context is canceled.
// Returns ErrHourlyLimitReached if the hourly budget has been exhausted.
// The budget slot is claimed before waiting and returned if the wait fails.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.reserve(); err != nil {
		return err
	}

	if err := r.limiter.Wait(ctx); err != nil {
		r.release()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

func (r *RateLimiter) reserve() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checkResetLocked()
	n := r.hourly.Load()
	if r.maxHourly > 0 && n >= r.maxHourly {
		return fmt.Errorf("%w (%d/%d)", ErrHourlyLimitReached, n, r.maxHourly)
	}
	r.hourly.Add(1)
	return nil
}

func (r *RateLimiter) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hourly.Load() > 0 {
		r.hourly.Add(-1)
	}
}

// HourlyCount returns the number of calls made in the current window.
func (r *RateLimiter) HourlyCount() int64 {
	return r.hourly.Load()
}

// MaxHourly returns the configured hourly call budget, or 0 when unlimited.
func (r *RateLimiter) MaxHourly() int64 {
	return r.maxHourly
}

// Remaining returns the number of calls left in the current window, or -1
// when the budget is unlimited.
func (r *RateLimiter) Remaining() int64 {
	if r.maxHourly == 0 {
		return -1
	}
	return max(r.maxHourly-r.hourly.Load(), 0)
}

// ResetAt returns the time when the current window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

func (r *RateLimiter) checkResetLocked() {
	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.hourly.Store(0)
		r.windowStart = now
		r.resetAt = now.Add(window)
	}
}
