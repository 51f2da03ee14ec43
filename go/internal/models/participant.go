package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultParticipantName is assigned when a participant is created without a name.
const DefaultParticipantName = "ゲスト"

// Participant represents one player that can join rooms
type Participant struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	RestaurantCandidate string    `json:"restaurant_candidate"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
