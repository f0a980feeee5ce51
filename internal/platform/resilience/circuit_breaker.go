package resilience

import (
	"cmp"
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreakerConfig is the per-dependency breaker tuning read from the
// environment. Zero thresholds fall back to the defaults.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	cfg.FailureThreshold = cmp.Or(max(cfg.FailureThreshold, 0), defaults.FailureThreshold)
	cfg.OpenTimeout = cmp.Or(max(cfg.OpenTimeout, 0), defaults.OpenTimeout)
	cfg.HalfOpenMaxReq = cmp.Or(max(cfg.HalfOpenMaxReq, 0), defaults.HalfOpenMaxReq)
	return cfg
}

// CircuitBreaker trips after consecutive failures of a downstream dependency
// and lets a bounded number of probes through once the open timeout passes.
type CircuitBreaker struct {
	mu sync.Mutex

	cfg CircuitBreakerConfig

	state     CircuitState
	failures  int
	openedAt  time.Time
	probing   int
	succeeded int

	now      func() time.Time
	onChange func(from, to CircuitState)
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	return NewCircuitBreakerFromConfig(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: failureThreshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	})
}

// NewCircuitBreakerFromConfig returns nil when the breaker is disabled; a nil
// breaker allows every call.
func NewCircuitBreakerFromConfig(cfg CircuitBreakerConfig) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	return &CircuitBreaker{
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers fn to run after every transition, outside the lock.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	from := b.state
	err := b.allowLocked()
	notify := b.transition(from)
	b.mu.Unlock()
	notify()
	return err
}

func (b *CircuitBreaker) allowLocked() error {
	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.state = CircuitStateHalfOpen
		b.probing, b.succeeded = 0, 0
	}
	if b.state == CircuitStateHalfOpen {
		if b.probing >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probing++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.probing = max(b.probing-1, 0)
		b.succeeded++
		if b.succeeded >= b.cfg.HalfOpenMaxReq && b.probing == 0 {
			b.state = CircuitStateClosed
			b.failures, b.succeeded = 0, 0
			b.openedAt = time.Time{}
		}
	}
	notify := b.transition(from)
	b.mu.Unlock()
	notify()
}

func (b *CircuitBreaker) RecordFailure() {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.open()
		}
	case CircuitStateHalfOpen:
		b.open()
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	notify := b.transition(from)
	b.mu.Unlock()
	notify()
}

func (b *CircuitBreaker) open() {
	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.probing, b.succeeded = 0, 0
}

func (b *CircuitBreaker) transition(from CircuitState) func() {
	to, fn := b.state, b.onChange
	if from == to || fn == nil {
		return func() {}
	}
	return func() { fn(from, to) }
}

func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

// Execute runs fn behind the breaker. Failures for which countAsFailure
// returns false (a 404, a validation error) do not trip the breaker.
func Execute[T any](ctx context.Context, b *CircuitBreaker, countAsFailure func(error) bool, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := b.Allow(); err != nil {
		return zero, err
	}
	out, err := fn(ctx)
	if err != nil && (countAsFailure == nil || countAsFailure(err)) {
		b.RecordFailure()
		return zero, err
	}
	b.RecordSuccess()
	return out, err
}
