package results

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// Change event types carried in the outbox and on the change feed.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
)

// SubmitResultRequest is one participant's final score for a game.
type SubmitResultRequest struct {
	RoomID        uuid.UUID       `json:"room_id"`
	ParticipantID uuid.UUID       `json:"participant_id"`
	GameType      models.GameType `json:"game_type"`
	Score         int64           `json:"score"`
	Details       json.RawMessage `json:"details,omitempty"`
}
