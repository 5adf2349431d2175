package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter spaces call starts at least 1s/perSecond apart. With a burst of
// one, the wait before a call is spacing - min(spacing, elapsed since the
// previous admitted call). The slot is taken on admission, so calls that
// later fail still count.
type RateLimiter struct {
	limiter *rate.Limiter
	spacing atomic.Int64
	metrics *Metrics
}

// Metrics tracks statistics about rate limiter usage.
type Metrics struct {
	totalRequests    atomic.Int64
	delayedRequests  atomic.Int64
	canceledRequests atomic.Int64
	totalDelayNanos  atomic.Int64
}

// New creates a RateLimiter admitting perSecond calls per second.
func New(perSecond int) *RateLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	r := &RateLimiter{metrics: &Metrics{}}
	spacing := time.Second / time.Duration(perSecond)
	r.spacing.Store(int64(spacing))
	r.limiter = rate.NewLimiter(rate.Every(spacing), 1)
	return r
}

// Spacing returns the minimum interval between call starts.
func (r *RateLimiter) Spacing() time.Duration {
	return time.Duration(r.spacing.Load())
}

// Wait blocks until the next call may start and returns how long it waited.
// No lock is held while sleeping. If ctx ends first the reservation is
// returned and ctx.Err() is reported.
func (r *RateLimiter) Wait(ctx context.Context) (time.Duration, error) {
	r.metrics.totalRequests.Add(1)

	if err := ctx.Err(); err != nil {
		r.metrics.canceledRequests.Add(1)
		return 0, err
	}

	res := r.limiter.Reserve()
	delay := res.Delay()
	if delay == 0 {
		return 0, nil
	}

	r.metrics.delayedRequests.Add(1)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		r.metrics.totalDelayNanos.Add(int64(delay))
		return delay, nil
	case <-ctx.Done():
		res.Cancel()
		r.metrics.canceledRequests.Add(1)
		return 0, ctx.Err()
	}
}

// SetLimit updates the admitted calls per second. Values below one mean one.
func (r *RateLimiter) SetLimit(perSecond int) {
	if perSecond <= 0 {
		perSecond = 1
	}
	spacing := time.Second / time.Duration(perSecond)
	r.spacing.Store(int64(spacing))
	r.limiter.SetLimit(rate.Every(spacing))
}

// Metrics returns a snapshot of the current rate limiter statistics.
func (r *RateLimiter) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		TotalRequests:    r.metrics.totalRequests.Load(),
		DelayedRequests:  r.metrics.delayedRequests.Load(),
		CanceledRequests: r.metrics.canceledRequests.Load(),
		TotalDelay:       time.Duration(r.metrics.totalDelayNanos.Load()),
	}
}

// MetricsSnapshot is a point-in-time capture of rate limiter statistics.
type MetricsSnapshot struct {
	// TotalRequests is the number of admission checks performed.
	TotalRequests int64
	// DelayedRequests is the number of calls that had to wait for their slot.
	DelayedRequests int64
	// CanceledRequests is the number of waits aborted by their context.
	CanceledRequests int64
	// TotalDelay is the accumulated time spent waiting.
	TotalDelay time.Duration
}
