// Package circuit provides a simple circuit breaker for calls to external
// trust infrastructure (ledger RPC, proof system endpoint).
package circuit

import "sync"

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is healthy and requests flow normally.
	StateClosed State = iota
	// StateOpen means the circuit has tripped and requests should fail fast.
	StateOpen
)

// Breaker tracks consecutive failures for fail-safe operations.
// When closed, requests flow normally. After FailureThreshold consecutive
// failures, the circuit opens. After SuccessThreshold consecutive successes
// while open, the circuit closes again.
type Breaker struct {
	mu               sync.Mutex
	state            State
	name             string
	probing          bool
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
}

// Option configures a Breaker instance.
type Option func(*Breaker)

// WithFailureThreshold sets the number of consecutive failures to open the circuit.
// Default is 5.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold sets the number of consecutive successes to close the circuit.
// Default is 3.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

// New creates a circuit breaker with the given name and options.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		state:            StateClosed,
		failureThreshold: 5,
		successThreshold: 3,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Name returns the circuit breaker's name for logging/metrics.
func (b *Breaker) Name() string {
	return b.name
}

// Allow reports whether a request may proceed. An open circuit admits one
// probe request at a time so it can discover recovery.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateClosed {
		return true
	}
	if !b.probing {
		b.probing = true
		return true
	}
	return false
}

// RecordSuccess notes a successful call and may close an open circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount = 0
	b.probing = false
	if b.state == StateOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = StateClosed
			b.successCount = 0
		}
	}
}

// RecordFailure notes a failed call and may open the circuit.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.successCount = 0
	b.probing = false
	b.failureCount++
	if b.state == StateClosed && b.failureCount >= b.failureThreshold {
		b.state = StateOpen
		b.failureCount = 0
	}
}

// CurrentState returns the breaker state for health reporting.
func (b *Breaker) CurrentState() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
