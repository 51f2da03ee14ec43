package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/outbox/db"
)

// OutboxEvent is one pending result change.
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	RoomID    uuid.UUID       `json:"room_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// Envelope is the message body published for each event.
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	RoomID    string          `json:"roomId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

func (e OutboxEvent) Envelope() Envelope {
	return Envelope{
		EventID:   e.ID.String(),
		EventType: e.EventType,
		RoomID:    e.RoomID.String(),
		Timestamp: e.CreatedAt.UTC(),
		Payload:   e.Payload,
	}
}

// Publisher delivers events to the message bus.
type Publisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

// Store is the slice of the outbox table the relay works with.
type Store interface {
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (db.ResultOutbox, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]db.ResultOutbox, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
	CountUnsentOutbox(ctx context.Context) (int64, error)
	PurgeSentOutbox(ctx context.Context, before time.Time) (int64, error)
}

func rowToEvent(row db.ResultOutbox) OutboxEvent {
	return OutboxEvent{
		ID:        row.ID,
		RoomID:    row.RoomID,
		EventType: row.EventType,
		Payload:   row.Payload,
		CreatedAt: row.CreatedAt,
	}
}
