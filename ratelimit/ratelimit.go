// Package ratelimit provides client-side request governors for the RXN API.
// A governor is consulted before every outgoing request and decides whether
// the call may proceed now. Implementations must be safe for concurrent use.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Defaults mirror the limits enforced by the RXN platform.
const (
	DefaultMaxPerMinute = 100000
	DefaultMinInterval  = 10 * time.Microsecond
)

var (
	// ErrTooManyRequests is returned when the per-minute budget is exhausted.
	ErrTooManyRequests = errors.New("ratelimit: too many requests per minute")

	// ErrTooFrequent is returned when two consecutive requests are closer
	// together than the minimum allowed spacing.
	ErrTooFrequent = errors.New("ratelimit: consecutive requests too close together")
)

// Governor decides whether an API request may be sent now.
type Governor interface {
	// Acquire reserves one request slot. A non-nil error means the request
	// must not be sent; a rejected call consumes no budget.
	Acquire(ctx context.Context) error
}

// Window enforces a per-minute request budget plus a minimum spacing between
// consecutive requests, failing fast when either limit is hit.
type Window struct {
	maxPerMinute int
	minInterval  time.Duration

	mu    sync.Mutex
	last  time.Time
	count int
}

// NewWindow creates a fail-fast governor. Non-positive arguments fall back to
// the platform defaults.
func NewWindow(maxPerMinute int, minInterval time.Duration) *Window {
	if maxPerMinute <= 0 {
		maxPerMinute = DefaultMaxPerMinute
	}
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Window{
		maxPerMinute: maxPerMinute,
		minInterval:  minInterval,
	}
}

// Acquire implements Governor.
func (w *Window) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if !w.last.IsZero() {
		elapsed := now.Sub(w.last)
		if elapsed < w.minInterval {
			return ErrTooFrequent
		}
		// More than a minute since the previous request: fresh budget.
		if elapsed >= time.Minute {
			w.count = 0
		}
	}
	if w.count >= w.maxPerMinute {
		return ErrTooManyRequests
	}

	w.count++
	w.last = now
	return nil
}

// Waiting blocks until a request slot is available instead of failing fast.
// Useful for batch workloads where backpressure beats hard errors.
type Waiting struct {
	limiter *rate.Limiter
}

// NewWaiting creates a blocking governor allowing maxPerMinute requests per
// minute, with the full minute budget available as burst.
func NewWaiting(maxPerMinute int) *Waiting {
	if maxPerMinute <= 0 {
		maxPerMinute = DefaultMaxPerMinute
	}
	return &Waiting{
		limiter: rate.NewLimiter(rate.Limit(float64(maxPerMinute)/60.0), maxPerMinute),
	}
}

// Acquire implements Governor, honoring ctx cancellation while waiting.
func (w *Waiting) Acquire(ctx context.Context) error {
	return w.limiter.Wait(ctx)
}

// Noop is a governor that always allows the request. Intended for tests and
// for callers that coordinate rate limits externally.
type Noop struct{}

// Acquire implements Governor.
func (Noop) Acquire(ctx context.Context) error {
	return ctx.Err()
}
