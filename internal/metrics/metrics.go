// Package metrics exposes Prometheus instruments for client calls.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cryptocom"

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport"
	OutcomeHTTP      = "http"
	OutcomeExchange  = "exchange"
	OutcomeDecode    = "decode"
)

// Collector records call counts, call latency and throttle waits. A nil
// *Collector is valid and records nothing.
type Collector struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	throttleWait *prometheus.HistogramVec
	breakerState *prometheus.GaugeVec
}

// New creates a Collector and registers it with reg. Registering twice with
// the same registerer reuses the already registered instruments.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "API calls by generation, operation and outcome.",
			},
			[]string{"generation", "operation", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "HTTP round trip time of API calls.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"generation", "operation"},
		),
		throttleWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "throttle_wait_seconds",
				Help:      "Time spent waiting for the outbound rate limit.",
				Buckets:   []float64{0, .01, .025, .05, .075, .1, .25, .5, 1},
			},
			[]string{"generation"},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open).",
			},
			[]string{"generation"},
		),
	}

	if reg == nil {
		return c, nil
	}

	var err error
	if c.requests, err = register(reg, c.requests); err != nil {
		return nil, err
	}
	if c.latency, err = register(reg, c.latency); err != nil {
		return nil, err
	}
	if c.throttleWait, err = register(reg, c.throttleWait); err != nil {
		return nil, err
	}
	if c.breakerState, err = register(reg, c.breakerState); err != nil {
		return nil, err
	}
	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return col, fmt.Errorf("register metrics: %w", err)
	}
	return col, nil
}

// ObserveRequest counts one finished call.
func (c *Collector) ObserveRequest(generation, operation, outcome string) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(generation, operation, outcome).Inc()
}

// ObserveLatency records the HTTP round trip of one call.
func (c *Collector) ObserveLatency(generation, operation string, d time.Duration) {
	if c == nil {
		return
	}
	c.latency.WithLabelValues(generation, operation).Observe(d.Seconds())
}

// ObserveThrottle records the time a call waited for its rate limit slot.
func (c *Collector) ObserveThrottle(generation string, d time.Duration) {
	if c == nil {
		return
	}
	c.throttleWait.WithLabelValues(generation).Observe(d.Seconds())
}

// SetBreakerState publishes the circuit breaker state.
func (c *Collector) SetBreakerState(generation string, state int) {
	if c == nil {
		return
	}
	c.breakerState.WithLabelValues(generation).Set(float64(state))
}
