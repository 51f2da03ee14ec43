package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GameResult is one participant's final score for one game in one room
type GameResult struct {
	ID              uuid.UUID       `json:"id"`
	RoomID          uuid.UUID       `json:"room_id"`
	ParticipantID   uuid.UUID       `json:"participant_id"`
	ParticipantName string          `json:"participant_name"`
	GameType        GameType        `json:"game_type"`
	Score           int64           `json:"score"`
	Details         json.RawMessage `json:"details,omitempty"`
	// CreatedAt is zero when the store did not report a timestamp.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
