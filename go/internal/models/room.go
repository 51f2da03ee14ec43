package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRoomName is used when a room is created without a display name.
	DefaultRoomName = "新しいルーム"
	// DefaultRoomCapacity is the number of members a room accepts.
	DefaultRoomCapacity = 4
)

// Room is a group of participants identified by a short code
type Room struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	// Members are ordered by join time.
	Members []Member `json:"members"`
}

// Member is a participant as seen through a room membership
type Member struct {
	Participant Participant `json:"participant"`
	JoinedAt    time.Time   `json:"joined_at"`
}

// Membership links a participant to a room
type Membership struct {
	RoomID        uuid.UUID `json:"room_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasMember reports whether the participant belongs to the room.
func (r *Room) HasMember(participantID uuid.UUID) bool {
	for _, m := range r.Members {
		if m.Participant.ID == participantID {
			return true
		}
	}
	return false
}
