// Package client is the public entry point: one Client talks to one API
// generation and exposes every market-data and trading call as a method.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"cryptocom/internal/circuitbreaker"
	"cryptocom/internal/metrics"
	"cryptocom/internal/ratelimit"
	"cryptocom/internal/transport"
	"cryptocom/pkg/core"
	"cryptocom/pkg/protocol"
)

const userAgent = "cryptocom-go"

// Client executes API calls for a single generation. It is safe for
// concurrent use; calls are spaced by the client's own rate limiter and
// nothing is shared between clients.
type Client struct {
	config    *core.Config
	protocol  core.Protocol
	transport core.Transport
	limiter   *ratelimit.RateLimiter
	breaker   *circuitbreaker.Breaker
	metrics   *metrics.Collector
	clock     core.Clock
	logger    zerolog.Logger
	nextID    atomic.Int64
}

type options struct {
	logger    zerolog.Logger
	transport core.Transport
	clock     core.Clock
	registry  prometheus.Registerer
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTransport replaces the default resty transport.
func WithTransport(t core.Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithClock replaces the wall clock used for nonces and timestamps.
func WithClock(clock core.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithMetrics registers Prometheus instruments with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// New creates a Client from config. The client is public-only unless the
// config carries both an API key and a secret.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := &options{
		logger: zerolog.Nop(),
		clock:  core.SystemClock,
	}
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger.With().Str("generation", config.Generation.String()).Logger()
	if config.LogLevel != "" {
		if level, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			logger = logger.Level(level)
		}
	}

	proto := protocol.New(config.Generation).WithBaseURL(config.ResolvedBaseURL())

	t := o.transport
	if t == nil {
		var err error
		t, err = transport.NewClient(&transport.Config{
			BaseURL:   proto.BaseURL(),
			Timeout:   config.Timeout,
			UserAgent: userAgent,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("create transport: %w", err)
		}
	}

	var collector *metrics.Collector
	if o.registry != nil {
		var err error
		if collector, err = metrics.New(o.registry); err != nil {
			return nil, err
		}
	}

	c := &Client{
		config:    config,
		protocol:  proto,
		transport: t,
		limiter:   ratelimit.New(config.RateLimitPerSecond),
		metrics:   collector,
		clock:     o.clock,
		logger:    logger,
	}

	if config.CircuitBreakerEnabled {
		c.breaker = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
			Now:              o.clock,
			OnStateChange: func(from, to circuitbreaker.State) {
				logger.Warn().
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state change")
				collector.SetBreakerState(config.Generation.String(), int(to))
			},
		})
	}

	logger.Debug().
		Str("root", proto.BaseURL()).
		Bool("public_only", config.PublicOnly()).
		Dur("throttle_spacing", c.limiter.Spacing()).
		Stringer("credentials", credentialsOf(config)).
		Msg("api client initialized")

	return c, nil
}

// NewPublic creates a public-only client for gen with default settings.
func NewPublic(gen core.Generation, opts ...Option) (*Client, error) {
	return New(core.DefaultConfig(gen), opts...)
}

func credentialsOf(config *core.Config) core.Credentials {
	if config.Credentials == nil {
		return core.Credentials{}
	}
	return *config.Credentials
}

// Generation returns the API generation the client is bound to.
func (c *Client) Generation() core.Generation {
	return c.config.Generation
}

// PublicOnly reports whether signed calls are rejected locally.
func (c *Client) PublicOnly() bool {
	return c.config.PublicOnly()
}

// Protocol returns the generation protocol the client builds requests with.
func (c *Client) Protocol() core.Protocol {
	return c.protocol
}

// ThrottleMetrics returns a snapshot of the rate limiter statistics.
func (c *Client) ThrottleMetrics() ratelimit.MetricsSnapshot {
	return c.limiter.Metrics()
}

// SetRateLimit changes the spacing of future calls to 1s/perSecond.
func (c *Client) SetRateLimit(perSecond int) {
	c.limiter.SetLimit(perSecond)
	c.logger.Debug().Dur("throttle_spacing", c.limiter.Spacing()).Msg("rate limit updated")
}

// BreakerMetrics returns a snapshot of the circuit breaker statistics. The
// boolean is false when the breaker is disabled.
func (c *Client) BreakerMetrics() (circuitbreaker.MetricsSnapshot, bool) {
	if c.breaker == nil {
		return circuitbreaker.MetricsSnapshot{}, false
	}
	return c.breaker.Metrics(), true
}

// ResetBreaker closes the circuit breaker. It does nothing when the breaker
// is disabled.
func (c *Client) ResetBreaker() {
	if c.breaker != nil {
		c.breaker.Reset()
	}
}

// Close releases the transport if it holds resources.
func (c *Client) Close() error {
	if closer, ok := c.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Do runs one operation through the pipeline: endpoint lookup, local
// rejection, envelope building, circuit breaker, rate limiter, transport and
// normalization. params use the logical names of core (core.ParamSymbol,
// ...). The returned Result is not retained by the client.
func (c *Client) Do(ctx context.Context, op core.Operation, params core.Params) core.Result {
	gen := c.config.Generation
	log := c.logger.With().Str("operation", op.String()).Logger()

	ep, ok := c.protocol.Endpoint(op)
	if !ok {
		return c.reject(op, core.NewError(gen, core.KindUnsupported, fmt.Sprintf("%s is not available on %s", op, gen)).
			WithCode(string(core.ErrCodeUnsupported)))
	}

	var (
		req *core.Request
		err error
	)
	if ep.Private {
		if c.config.PublicOnly() {
			log.Debug().Str("path", ep.Path).Msg("signed call rejected on public-only client")
			return c.reject(op, core.NewError(gen, core.KindPublicOnly, "credentials required for "+ep.Path).
				WithCode(string(core.ErrCodePublicOnly)))
		}
		var id int64
		if gen == core.GenerationV2 {
			id = c.nextID.Add(1)
		}
		req, err = c.protocol.BuildSigned(op, params, *c.config.Credentials, c.clock.Millis(), id)
	} else {
		req, err = c.protocol.BuildPublic(op, params)
	}
	if err != nil {
		return c.reject(op, asError(gen, core.KindInvalidRequest, core.ErrCodeInvalidRequest, err))
	}

	if c.breaker != nil && !c.breaker.Allow() {
		return c.reject(op, core.NewError(gen, core.KindCircuitOpen, "circuit breaker is open").
			WithCode(string(core.ErrCodeCircuitBreaker)))
	}

	delay, err := c.limiter.Wait(ctx)
	if err != nil {
		return c.reject(op, core.NewError(gen, core.KindCanceled, "rate limit wait").
			WithCode(string(core.ErrCodeCanceled)).
			WithCause(err))
	}
	if delay > 0 {
		log.Debug().Dur("delay", delay).Str("path", req.Path).Msg("rate limiter activated")
	}
	c.metrics.ObserveThrottle(gen.String(), delay)

	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		if c.breaker != nil {
			c.breaker.Record(false)
		}
		log.Warn().Err(err).Str("path", req.Path).Msg("transport failure")
		c.metrics.ObserveRequest(gen.String(), op.String(), metrics.OutcomeTransport)
		return core.Failure(core.NewError(gen, core.KindTransport, "").
			WithCode(string(core.ErrCodeTransport)).
			WithCause(err))
	}

	if c.breaker != nil {
		c.breaker.Record(resp.StatusCode < http.StatusInternalServerError)
	}
	log.Debug().Str("path", req.Path).Dur("elapsed", resp.Elapsed).Msg("response received")
	c.metrics.ObserveLatency(gen.String(), op.String(), resp.Elapsed)

	result := c.protocol.Normalize(resp.StatusCode, resp.Body)
	c.logResult(log, req.Path, result)
	c.metrics.ObserveRequest(gen.String(), op.String(), outcomeOf(result))
	return result
}

func (c *Client) reject(op core.Operation, err *core.Error) core.Result {
	c.metrics.ObserveRequest(c.config.Generation.String(), op.String(), metrics.OutcomeRejected)
	return core.Failure(err)
}

func (c *Client) logResult(log zerolog.Logger, path string, result core.Result) {
	if result.OK() {
		return
	}
	e := result.Err
	switch e.Kind {
	case core.KindHTTP:
		log.Warn().Int("status", e.HTTPStatus).Str("path", path).Str("body", e.Raw).Msg("response not ok")
	case core.KindExchange:
		log.Warn().Str("code", e.Code).Str("message", e.Message).Str("path", path).Msg("exchange error")
	case core.KindDecode:
		log.Error().Err(e).Str("path", path).Str("response", e.Raw).Msg("undecodable response")
	}
}

func outcomeOf(result core.Result) string {
	if result.OK() {
		return metrics.OutcomeOK
	}
	switch result.Err.Kind {
	case core.KindHTTP:
		return metrics.OutcomeHTTP
	case core.KindExchange:
		return metrics.OutcomeExchange
	case core.KindDecode:
		return metrics.OutcomeDecode
	}
	return metrics.OutcomeTransport
}

// asError returns err as *core.Error, wrapping foreign errors with kind.
func asError(gen core.Generation, kind core.ErrorKind, code core.ErrorCode, err error) *core.Error {
	var e *core.Error
	if errors.As(err, &e) {
		return e
	}
	return core.NewError(gen, kind, err.Error()).WithCode(string(code)).WithCause(err)
}

// call runs op and splits the result for the facade methods.
func (c *Client) call(ctx context.Context, op core.Operation, params core.Params) (json.RawMessage, error) {
	return c.Do(ctx, op, params).Unwrap()
}
