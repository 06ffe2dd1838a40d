package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type State uint8

const (
	Closed State = iota + 1
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrOpen = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Call(fn func() error) error
	State() State
	Reset()
}

type circuitBreaker struct {
	mu    sync.Mutex
	state State
	// failures is a ring of the last len(failures) outcomes, true for a failed call.
	failures []bool
	pos      int
	// threshold is the failure ratio over the ring that opens the breaker.
	threshold float64
	// cooldown is how long the breaker stays open before letting a probe through.
	cooldown time.Duration
	openedAt time.Time
	// recovery is the number of consecutive half-open successes needed to close.
	recovery  int
	successes int
	now       func() time.Time
}

func New(window int, cooldown time.Duration, threshold float64, recovery int) CircuitBreaker {
	if window <= 0 {
		window = 1
	}
	return &circuitBreaker{
		state:     Closed,
		failures:  make([]bool, window),
		threshold: threshold,
		cooldown:  cooldown,
		recovery:  recovery,
		now:       time.Now,
	}
}

func (cb *circuitBreaker) Call(fn func() error) error {
	if !cb.allow() {
		return ErrOpen
	}
	err := fn()
	cb.record(err != nil)
	return err
}

func (cb *circuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state != Open {
		return true
	}
	if cb.now().Sub(cb.openedAt) <= cb.cooldown {
		return false
	}
	cb.state = HalfOpen
	cb.successes = 0
	return true
}

func (cb *circuitBreaker) record(failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures[cb.pos] = failed
	cb.pos = (cb.pos + 1) % len(cb.failures)

	switch cb.state {
	case HalfOpen:
		if failed {
			cb.trip()
			return
		}
		cb.successes++
		if cb.successes >= cb.recovery {
			cb.reset()
		}
	case Closed:
		if cb.failureRatio() >= cb.threshold {
			cb.trip()
		}
	}
}

func (cb *circuitBreaker) failureRatio() float64 {
	n := 0
	for _, failed := range cb.failures {
		if failed {
			n++
		}
	}
	return float64(n) / float64(len(cb.failures))
}

func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.successes = 0
	cb.openedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.failures {
		cb.failures[i] = false
	}
	cb.pos = 0
	cb.successes = 0
	cb.state = Closed
}
