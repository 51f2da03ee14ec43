package game

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Clock is the time source used by sessions.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) clockwork.Ticker
}

// State of a game session. Transitions only move forward.
type State int

const (
	StateIdle State = iota
	StateCountdown
	StateRunning
	StateResult
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StateRunning:
		return "running"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// Session is a one-shot idle -> countdown -> running -> result state machine
// around a Simulation.
type Session[S Simulation] struct {
	mu    sync.Mutex
	clock Clock
	sim   S
	desc  Descriptor

	state       State
	countdownAt time.Time
	startedAt   time.Time
	elapsed     time.Duration
	outcome     Outcome

	hooks []func(Outcome)
}

// NewSession creates an idle session for sim.
func NewSession[S Simulation](sim S, clock Clock) *Session[S] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Session[S]{
		clock: clock,
		sim:   sim,
		desc:  sim.Descriptor(),
		state: StateIdle,
	}
}

// Simulation returns the underlying simulation for read access.
func (s *Session[S]) Simulation() S {
	return s.sim
}

// Descriptor returns the round description.
func (s *Session[S]) Descriptor() Descriptor {
	return s.desc
}

// OnResult registers fn to run once when the session reaches the result
// state. Hooks run outside the session lock, in registration order.
func (s *Session[S]) OnResult(fn func(Outcome)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Start moves the session from idle into the countdown. It can succeed only
// once per session.
func (s *Session[S]) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return ErrAlreadyStarted
	}
	s.state = StateCountdown
	s.countdownAt = s.clock.Now()

	log.Debug().
		Str("game_type", string(s.desc.Type)).
		Dur("countdown", s.desc.Countdown).
		Msg("session countdown started")
	return nil
}

// State returns the current state without advancing time.
func (s *Session[S]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Elapsed returns the running time measured at the last advance.
func (s *Session[S]) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Remaining returns the time left in a fixed-length round, or zero.
func (s *Session[S]) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.desc.Duration == 0 || s.state != StateRunning {
		return 0
	}
	return max(0, s.desc.Duration-s.elapsed)
}

// Outcome returns the final result once the session has ended.
func (s *Session[S]) Outcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome, s.state == StateResult
}

// Tick advances the session to the current clock time and returns the
// resulting state.
func (s *Session[S]) Tick() State {
	s.mu.Lock()
	finished := s.advanceLocked(s.clock.Now())
	state := s.state
	s.mu.Unlock()

	if finished {
		s.fireHooks()
	}
	return state
}

// Apply delivers player input. fn runs against the simulation while the
// session is running and returns true when the input ends the round.
func (s *Session[S]) Apply(fn func(sim S) bool) error {
	s.mu.Lock()
	now := s.clock.Now()
	finished := s.advanceLocked(now)
	if s.state != StateRunning {
		s.mu.Unlock()
		if finished {
			s.fireHooks()
		}
		return ErrNotRunning
	}
	if fn(s.sim) {
		finished = s.finishLocked(now)
	}
	s.mu.Unlock()

	if finished {
		s.fireHooks()
	}
	return nil
}

// Run drives the session on a frame ticker until it reaches the result
// state or ctx is done. The session must have been started.
func (s *Session[S]) Run(ctx context.Context, frame time.Duration) (Outcome, error) {
	ticker := s.clock.NewTicker(frame)
	defer ticker.Stop()

	for {
		if s.Tick() == StateResult {
			out, _ := s.Outcome()
			return out, nil
		}
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case <-ticker.Chan():
		}
	}
}

// advanceLocked reports whether this call moved the session into result.
func (s *Session[S]) advanceLocked(now time.Time) bool {
	if s.state == StateCountdown {
		expiry := s.countdownAt.Add(s.desc.Countdown)
		if now.Before(expiry) {
			return false
		}
		// elapsed time is measured from the countdown expiry, not from the
		// tick that noticed it
		s.state = StateRunning
		s.startedAt = expiry
		s.sim.Begin(expiry)
	}
	if s.state != StateRunning {
		return false
	}

	s.elapsed = now.Sub(s.startedAt)
	if s.sim.Advance(s.elapsed) {
		return false
	}
	return s.finishLocked(now)
}

func (s *Session[S]) finishLocked(now time.Time) bool {
	if s.state == StateResult {
		return false
	}
	s.state = StateResult
	s.outcome = Outcome{
		GameType: s.desc.Type,
		Order:    s.desc.Order,
		Score:    s.sim.Score(),
		Elapsed:  s.elapsed,
		Details:  s.sim.Details(),
		EndedAt:  now,
	}

	log.Info().
		Str("game_type", string(s.desc.Type)).
		Int64("score", s.outcome.Score).
		Dur("elapsed", s.elapsed).
		Msg("session finished")
	return true
}

func (s *Session[S]) fireHooks() {
	s.mu.Lock()
	hooks := slices.Clone(s.hooks)
	out := s.outcome
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(out)
	}
}
