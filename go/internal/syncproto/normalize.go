package syncproto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// ErrIncompleteEvent is returned when a change carries no room or game type.
var ErrIncompleteEvent = errors.New("change event without room or game type")

// ChangeEvent is the canonical form of a result change notification. Only
// the keys are trusted; scores are always re-read from the store.
type ChangeEvent struct {
	RoomID        uuid.UUID
	GameType      models.GameType
	ParticipantID uuid.UUID
}

var (
	roomKeys        = []string{"room_id", "roomId", "roomID"}
	gameTypeKeys    = []string{"game_type", "gameType"}
	participantKeys = []string{"participant_id", "participantId", "participantID", "user_id", "userId"}
	nestedKeys      = []string{"record", "new", "payload", "data"}
)

const maxNesting = 3

// Normalize extracts a ChangeEvent from a change payload. Keys may be snake
// or camel case, at the top level or nested under record, new, payload or
// data.
func Normalize(data []byte) (ChangeEvent, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return ChangeEvent{}, fmt.Errorf("decode change event: %w", err)
	}
	ev, ok := normalizeObject(obj, 0)
	if !ok {
		return ChangeEvent{}, ErrIncompleteEvent
	}
	return ev, nil
}

func normalizeObject(obj map[string]json.RawMessage, depth int) (ChangeEvent, bool) {
	var ev ChangeEvent
	room := firstString(obj, roomKeys)
	gameType := firstString(obj, gameTypeKeys)
	if room != "" && gameType != "" {
		id, err := uuid.Parse(room)
		if err == nil {
			ev.RoomID = id
			ev.GameType = models.GameType(gameType)
			if p, err := uuid.Parse(firstString(obj, participantKeys)); err == nil {
				ev.ParticipantID = p
			}
			return ev, true
		}
	}

	if depth >= maxNesting {
		return ev, false
	}
	for _, key := range nestedKeys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err != nil {
			continue
		}
		if ev, ok := normalizeObject(nested, depth+1); ok {
			return ev, true
		}
	}
	return ev, false
}

func firstString(obj map[string]json.RawMessage, keys []string) string {
	for _, k := range keys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// Matches reports whether the event belongs to the watched round.
func (e ChangeEvent) Matches(roomID uuid.UUID, gameType models.GameType) bool {
	return e.RoomID == roomID && e.GameType == gameType
}
