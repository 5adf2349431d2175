package circuitbreaker

import (
	"sync"
	"sync/atomic"
	"time"
)

type State int32

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	FailThreshold    int           `json:"fail_threshold"`
	SuccessThreshold int           `json:"success_threshold"`
	Timeout          time.Duration `json:"timeout"`
	// Now defaults to time.Now.
	Now func() time.Time `json:"-"`
	// OnStateChange is called with the breaker lock held; it must not call back
	// into the breaker.
	OnStateChange func(from, to State) `json:"-"`
}

// Breaker fails calls fast after FailThreshold consecutive failures. After
// Timeout it lets trial calls through; SuccessThreshold consecutive successes
// close it again and any failure reopens it.
type Breaker struct {
	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
	config    Config
	metrics   *Metrics
}

type Metrics struct {
	totalRequests    atomic.Int64
	rejectedRequests atomic.Int64
	successRequests  atomic.Int64
	failedRequests   atomic.Int64
	stateChanges     atomic.Int32
}

func New(config Config) *Breaker {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.FailThreshold <= 0 {
		config.FailThreshold = 1
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}
	return &Breaker{
		state:   StateClosed,
		config:  config,
		metrics: &Metrics{},
	}
}

// Allow reports whether a call may proceed. An open breaker whose timeout has
// elapsed moves to half-open and admits the call.
func (b *Breaker) Allow() bool {
	b.metrics.totalRequests.Add(1)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.config.Now().Sub(b.openedAt) < b.config.Timeout {
			b.metrics.rejectedRequests.Add(1)
			return false
		}
		b.transitionTo(StateHalfOpen)
	}
	return true
}

// Record reports the outcome of an admitted call.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if success {
		b.metrics.successRequests.Add(1)
	} else {
		b.metrics.failedRequests.Add(1)
	}

	switch b.state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.config.FailThreshold {
			b.open()
		}
	case StateHalfOpen:
		if !success {
			b.open()
			return
		}
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.failures = 0
			b.successes = 0
			b.transitionTo(StateClosed)
		}
	case StateOpen:
		// A call admitted before the breaker opened; its outcome changes nothing.
	}
}

func (b *Breaker) open() {
	b.openedAt = b.config.Now()
	b.successes = 0
	b.transitionTo(StateOpen)
}

func (b *Breaker) transitionTo(newState State) {
	if b.state == newState {
		return
	}
	old := b.state
	b.state = newState
	b.metrics.stateChanges.Add(1)
	if b.config.OnStateChange != nil {
		b.config.OnStateChange(old, newState)
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the breaker and clears the consecutive counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.successes = 0
	b.transitionTo(StateClosed)
}

func (b *Breaker) Metrics() MetricsSnapshot {
	b.mu.Lock()
	state, failures, successes := b.state, b.failures, b.successes
	b.mu.Unlock()

	return MetricsSnapshot{
		TotalRequests:        b.metrics.totalRequests.Load(),
		RejectedRequests:     b.metrics.rejectedRequests.Load(),
		SuccessRequests:      b.metrics.successRequests.Load(),
		FailedRequests:       b.metrics.failedRequests.Load(),
		StateChanges:         b.metrics.stateChanges.Load(),
		ConsecutiveFailures:  failures,
		ConsecutiveSuccesses: successes,
		CurrentState:         state.String(),
	}
}

type MetricsSnapshot struct {
	TotalRequests        int64
	RejectedRequests     int64
	SuccessRequests      int64
	FailedRequests       int64
	StateChanges         int32
	ConsecutiveFailures  int
	ConsecutiveSuccesses int
	CurrentState         string
}
