package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type GameResult struct {
	ID              uuid.UUID             `json:"id"`
	RoomID          uuid.UUID             `json:"room_id"`
	ParticipantID   uuid.UUID             `json:"participant_id"`
	ParticipantName string                `json:"participant_name"`
	GameType        string                `json:"game_type"`
	Score           int64                 `json:"score"`
	Details         pqtype.NullRawMessage `json:"details"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}
