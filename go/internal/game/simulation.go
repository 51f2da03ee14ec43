package game

import (
	"time"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// Descriptor describes the fixed shape of a game round.
type Descriptor struct {
	Type      models.GameType
	Order     models.ScoreOrder
	Countdown time.Duration
	// Duration is zero for games that only end on player action.
	Duration time.Duration
}

// Simulation is the per-game strategy driven by a Session.
//
// Advance receives the wall-clock time elapsed since the running state was
// entered and reports whether the round continues. Implementations must
// derive all state from elapsed rather than from the number of calls.
type Simulation interface {
	Descriptor() Descriptor
	Begin(startedAt time.Time)
	Advance(elapsed time.Duration) bool
	Score() int64
	Details() map[string]any
}

// Outcome is the terminal result of a session.
type Outcome struct {
	GameType models.GameType   `json:"game_type"`
	Order    models.ScoreOrder `json:"order"`
	Score    int64             `json:"score"`
	Elapsed  time.Duration     `json:"elapsed"`
	Details  map[string]any    `json:"details,omitempty"`
	EndedAt  time.Time         `json:"ended_at"`
}
