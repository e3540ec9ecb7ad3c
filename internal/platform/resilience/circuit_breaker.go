package resilience

import (
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

// StateListener is called after a transition, without the breaker lock held.
type StateListener func(from, to CircuitState)

// counts is reset on every transition.
type counts struct {
	failures  int // consecutive, while closed
	inFlight  int // probes admitted, while half-open
	successes int // probe successes, while half-open
}

// CircuitBreaker opens after failureThreshold consecutive failures, rejects calls
// for openTimeout, then admits up to halfOpenMaxReq probes. The breaker closes
// once every probe succeeded and reopens on the first probe failure.
type CircuitBreaker struct {
	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int
	now              func() time.Time

	mu       sync.Mutex
	listener StateListener
	state    CircuitState
	openedAt time.Time
	counts   counts
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: max(failureThreshold, 1),
		openTimeout:      cmpOr(openTimeout, 15*time.Second),
		halfOpenMaxReq:   max(halfOpenMaxReq, 1),
		now:              time.Now,
		state:            CircuitStateClosed,
	}
}

func cmpOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func (b *CircuitBreaker) OnStateChange(listener StateListener) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listener = listener
}

// Allow admits a call or returns ErrCircuitOpen. Every admitted call must be
// followed by RecordSuccess or RecordFailure.
func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}
	return b.update(func() error {
		if b.state == CircuitStateOpen {
			if b.now().Sub(b.openedAt) < b.openTimeout {
				return ErrCircuitOpen
			}
			b.moveTo(CircuitStateHalfOpen)
		}
		if b.state == CircuitStateHalfOpen {
			if b.counts.inFlight >= b.halfOpenMaxReq {
				return ErrCircuitOpen
			}
			b.counts.inFlight++
		}
		return nil
	})
}

// Execute runs fn when the breaker allows it and records the outcome.
// Errors for which countAsFailure returns false are recorded as successes.
// A rejected call returns ErrCircuitOpen without running fn.
func (b *CircuitBreaker) Execute(fn func() error, countAsFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil && (countAsFailure == nil || countAsFailure(err)) {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	if b == nil {
		return
	}
	_ = b.update(func() error {
		switch b.state {
		case CircuitStateClosed:
			b.counts.failures = 0
		case CircuitStateHalfOpen:
			b.releaseProbe()
			b.counts.successes++
			if b.counts.successes >= b.halfOpenMaxReq && b.counts.inFlight == 0 {
				b.moveTo(CircuitStateClosed)
			}
		}
		return nil
	})
}

func (b *CircuitBreaker) RecordFailure() {
	if b == nil {
		return
	}
	_ = b.update(func() error {
		switch b.state {
		case CircuitStateClosed:
			b.counts.failures++
			if b.counts.failures >= b.failureThreshold {
				b.moveTo(CircuitStateOpen)
			}
		case CircuitStateHalfOpen:
			b.moveTo(CircuitStateOpen)
		case CircuitStateOpen:
			b.openedAt = b.now()
		}
		return nil
	})
}

// State reports the effective state: an open breaker past its timeout reads as
// half-open. A nil breaker is always closed.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

// update runs fn under the lock and notifies the listener if the state moved.
func (b *CircuitBreaker) update(fn func() error) error {
	b.mu.Lock()
	from := b.state
	err := fn()
	to, listener := b.state, b.listener
	b.mu.Unlock()

	if listener != nil && from != to {
		listener(from, to)
	}
	return err
}

func (b *CircuitBreaker) releaseProbe() {
	if b.counts.inFlight > 0 {
		b.counts.inFlight--
	}
}

func (b *CircuitBreaker) moveTo(state CircuitState) {
	b.state = state
	b.counts = counts{}
	switch state {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.openedAt = time.Time{}
	}
}
