package main

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/syncproto"
)

// botProfile sets how well a strategy plays.
type botProfile struct {
	clickRate    float64
	accuracy     float64
	timingJitter time.Duration
	reaction     float64
}

var strategies = map[string]botProfile{
	"perfect": {clickRate: 1, accuracy: 1, reaction: 1},
	"human":   {clickRate: 0.45, accuracy: 0.85, timingJitter: 400 * time.Millisecond, reaction: 0.6},
}

func strategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// newInput builds the per-frame input for one round.
func newInput(p botProfile, rng *rand.Rand) syncproto.Input {
	var stopAt time.Duration
	if p.timingJitter > 0 {
		stopAt = time.Duration(rng.NormFloat64() * float64(p.timingJitter))
	}

	return func(sim game.Simulation, elapsed time.Duration) bool {
		switch s := sim.(type) {
		case *game.ButtonMashing:
			if rng.Float64() < p.clickRate {
				s.Click()
			}
		case *game.ColorChallenge:
			if rng.Float64() >= p.clickRate {
				break
			}
			answer := s.Current().Answer()
			if rng.Float64() >= p.accuracy {
				answer = game.Colors[rng.IntN(len(game.Colors))]
			}
			s.Answer(answer)
		case *game.TimingStop:
			if elapsed >= s.Target()+stopAt {
				return s.Stop()
			}
		case *game.Avoidance:
			if rng.Float64() < p.reaction {
				s.SetDirection(dodge(s), 0)
			}
		}
		return false
	}
}

// dodge steers away from the closest obstacle heading for the player and
// drifts back to the middle otherwise.
func dodge(a *game.Avoidance) float64 {
	px, py := a.Player()
	const lookahead = 160.0

	threat, best := (*game.Obstacle)(nil), math.Inf(1)
	for _, o := range a.Obstacles() {
		cx, cy := o.X+o.W/2, o.Y+o.H/2
		dy := py - cy
		if dy < -o.H || dy > lookahead {
			continue
		}
		if dx := math.Abs(px - cx); dx < o.W/2+40 && dy < best {
			obstacle := o
			threat, best = &obstacle, dy
		}
	}
	if threat == nil {
		const mid = 180.0
		switch {
		case px < mid-10:
			return 0.5
		case px > mid+10:
			return -0.5
		}
		return 0
	}
	if px < threat.X+threat.W/2 {
		return -1
	}
	return 1
}
