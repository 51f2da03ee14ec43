package game

import (
	"fmt"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// NewSimulation builds the simulation for gameType. seed only affects games
// with random content.
func NewSimulation(gameType models.GameType, t Tuning, seed uint64) (Simulation, error) {
	switch gameType {
	case models.GameTypeAvoidance:
		return NewAvoidance(t.Avoidance, seed), nil
	case models.GameTypeButtonMashing:
		return NewButtonMashing(t.ButtonMashing), nil
	case models.GameTypeColorChallenge:
		return NewColorChallenge(t.ColorChallenge, seed), nil
	case models.GameTypeTimingStop:
		return NewTimingStop(t.TimingStop), nil
	default:
		return nil, fmt.Errorf("unknown game type %q", gameType)
	}
}
