package game

import (
	"time"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// Verdict is the display-only direction of a timing error.
type Verdict string

const (
	VerdictEarly Verdict = "early"
	VerdictLate  Verdict = "late"
	VerdictExact Verdict = "exact"
)

// VisibleUntil returns how long the timer stays visible for target:
// 30% of the target rounded up to a whole second, never below one second.
func VisibleUntil(target time.Duration) time.Duration {
	ms := target.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	steps := (3*ms + 9999) / 10000
	return time.Duration(max(1, steps)) * time.Second
}

// TimingStop asks the player to stop a hidden timer on a target duration.
// The round only ends when the player stops.
type TimingStop struct {
	cfg       TimingStopTuning
	elapsed   time.Duration
	stoppedAt time.Duration
	stopped   bool
}

func NewTimingStop(cfg TimingStopTuning) *TimingStop {
	return &TimingStop{cfg: cfg}
}

func (t *TimingStop) Descriptor() Descriptor {
	return Descriptor{
		Type:      models.GameTypeTimingStop,
		Order:     models.ScoreOrderAsc,
		Countdown: t.cfg.Countdown,
	}
}

func (t *TimingStop) Begin(time.Time) {
	t.elapsed, t.stoppedAt, t.stopped = 0, 0, false
}

func (t *TimingStop) Advance(elapsed time.Duration) bool {
	if t.stopped {
		return false
	}
	t.elapsed = elapsed
	return true
}

// Stop freezes the timer at the last advanced elapsed time. It returns true
// the first time it is called.
func (t *TimingStop) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.stoppedAt = t.elapsed
	return true
}

// Visible reports whether the timer display is still shown.
func (t *TimingStop) Visible() bool {
	return t.elapsed < VisibleUntil(t.cfg.Target)
}

// Target returns the duration the player aims for.
func (t *TimingStop) Target() time.Duration {
	return t.cfg.Target
}

// SignedError is stop time minus target, negative when early.
func (t *TimingStop) SignedError() time.Duration {
	return t.stoppedAt.Truncate(time.Millisecond) - t.cfg.Target.Truncate(time.Millisecond)
}

// Verdict classifies the stop for display.
func (t *TimingStop) Verdict() Verdict {
	switch d := t.SignedError(); {
	case d < 0:
		return VerdictEarly
	case d > 0:
		return VerdictLate
	default:
		return VerdictExact
	}
}

// Score is the absolute error in milliseconds. Lower is better.
func (t *TimingStop) Score() int64 {
	ms := t.SignedError().Milliseconds()
	if ms < 0 {
		return -ms
	}
	return ms
}

// Details is empty: the sign of the error is never persisted.
func (t *TimingStop) Details() map[string]any {
	return nil
}
