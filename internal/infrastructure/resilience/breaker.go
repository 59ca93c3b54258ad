package resilience

import (
	"errors"
	"sync"
	"time"
)

// Returned without invoking the guarded call.
var (
	ErrOpen   = errors.New("breaker open")
	ErrProbes = errors.New("breaker probe limit reached")
)

// State is the breaker's position in the trip cycle.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings tunes the breaker for one call profile. Zero values take the
// dynamic-backend defaults: trip after 3 consecutive failures, probe one
// call at a time after a 30-second cooldown, and forget stale failures
// after a minute of closed-state calm.
type Settings struct {
	// FailureThreshold is the consecutive-failure count that trips the breaker.
	FailureThreshold uint32
	// Probes is how many calls are admitted while half-open.
	Probes uint32
	// Cooldown is the open-state period before probing begins.
	Cooldown time.Duration
	// Window bounds how long a closed-state failure streak is remembered.
	Window time.Duration
}

func (s *Settings) fill() {
	if s.FailureThreshold == 0 {
		s.FailureThreshold = 3
	}
	if s.Probes == 0 {
		s.Probes = 1
	}
	if s.Cooldown == 0 {
		s.Cooldown = 30 * time.Second
	}
	if s.Window == 0 {
		s.Window = time.Minute
	}
}

// Breaker short-circuits calls to an implementation that keeps failing.
// While open every call returns ErrOpen immediately; after the cooldown a
// bounded number of probes test whether the implementation recovered.
type Breaker struct {
	name string
	cfg  Settings

	mu       sync.Mutex
	state    State
	fails    uint32 // consecutive failures while closed
	inFlight uint32 // probes admitted while half-open
	wins     uint32 // probe successes
	deadline time.Time
	gen      uint64
}

// New creates a breaker. Zero settings fields take their defaults.
func New(name string, cfg Settings) *Breaker {
	cfg.fill()
	return &Breaker{
		name:     name,
		cfg:      cfg,
		deadline: time.Now().Add(cfg.Window),
	}
}

// Name returns the breaker's label.
func (b *Breaker) Name() string { return b.name }

// State folds any pending deadline transition before reporting.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tick(time.Now())
}

// Do runs the call if the breaker admits it. A panic in the call counts
// as a failure before propagating.
func (b *Breaker) Do(call func() error) error {
	gen, err := b.admit()
	if err != nil {
		return err
	}

	defer func() {
		if e := recover(); e != nil {
			b.settle(gen, false)
			panic(e)
		}
	}()

	err = call()
	b.settle(gen, err == nil)
	return err
}

func (b *Breaker) admit() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.tick(time.Now()) {
	case StateOpen:
		return b.gen, ErrOpen
	case StateHalfOpen:
		if b.inFlight >= b.cfg.Probes {
			return b.gen, ErrProbes
		}
		b.inFlight++
	}
	return b.gen, nil
}

// settle records a call's outcome. Outcomes from a superseded generation
// (the window rolled or the state shifted underneath the call) are
// discarded rather than charged to the current streak.
func (b *Breaker) settle(gen uint64, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if b.tick(now) == StateOpen || gen != b.gen {
		return
	}

	switch b.state {
	case StateClosed:
		if ok {
			b.fails = 0
			return
		}
		b.fails++
		if b.fails >= b.cfg.FailureThreshold {
			b.shift(StateOpen, now)
		}
	case StateHalfOpen:
		if !ok {
			b.shift(StateOpen, now)
			return
		}
		b.wins++
		if b.wins >= b.cfg.Probes {
			b.shift(StateClosed, now)
		}
	}
}

// tick applies deadline-driven transitions and returns the state. Caller
// holds the lock.
func (b *Breaker) tick(now time.Time) State {
	switch b.state {
	case StateClosed:
		if !b.deadline.IsZero() && b.deadline.Before(now) {
			b.fails = 0
			b.gen++
			b.deadline = now.Add(b.cfg.Window)
		}
	case StateOpen:
		if b.deadline.Before(now) {
			b.shift(StateHalfOpen, now)
		}
	}
	return b.state
}

func (b *Breaker) shift(to State, now time.Time) {
	b.state = to
	b.gen++
	b.fails, b.inFlight, b.wins = 0, 0, 0

	switch to {
	case StateClosed:
		b.deadline = now.Add(b.cfg.Window)
	case StateOpen:
		b.deadline = now.Add(b.cfg.Cooldown)
	case StateHalfOpen:
		b.deadline = time.Time{}
	}
}
