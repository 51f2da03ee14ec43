package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type ResultOutbox struct {
	ID        uuid.UUID    `json:"id"`
	RoomID    uuid.UUID    `json:"room_id"`
	EventType string       `json:"event_type"`
	Payload   []byte       `json:"payload"`
	CreatedAt time.Time    `json:"created_at"`
	SentAt    sql.NullTime `json:"sent_at"`
}
