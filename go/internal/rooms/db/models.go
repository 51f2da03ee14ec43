package db

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type RoomMember struct {
	RoomID              uuid.UUID `json:"room_id"`
	ParticipantID       uuid.UUID `json:"participant_id"`
	Name                string    `json:"name"`
	RestaurantCandidate string    `json:"restaurant_candidate"`
	ParticipantCreated  time.Time `json:"participant_created_at"`
	ParticipantUpdated  time.Time `json:"participant_updated_at"`
	JoinedAt            time.Time `json:"joined_at"`
}
