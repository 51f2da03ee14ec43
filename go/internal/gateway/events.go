package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mcdev12/meshiroyale/go/internal/outbox"
)

// TableGameResults is the only table whose changes are streamed.
const TableGameResults = "game_results"

// Change types a subscriber may filter on.
const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
)

// ChangeFrame is one row change as delivered to websocket subscribers.
type ChangeFrame struct {
	Table           string          `json:"table"`
	Type            string          `json:"type"`
	CommitTimestamp time.Time       `json:"commit_timestamp"`
	Record          json.RawMessage `json:"record"`
}

// FrameFromEnvelope converts a relayed outbox message into a change frame.
func FrameFromEnvelope(data []byte) (ChangeFrame, error) {
	var env outbox.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ChangeFrame{}, fmt.Errorf("unmarshal event envelope: %w", err)
	}

	typ := strings.ToUpper(env.EventType)
	if typ != ChangeInsert && typ != ChangeUpdate {
		return ChangeFrame{}, fmt.Errorf("unknown event type: %q", env.EventType)
	}
	if len(env.Payload) == 0 {
		return ChangeFrame{}, fmt.Errorf("event %s has no payload", env.EventID)
	}

	return ChangeFrame{
		Table:           TableGameResults,
		Type:            typ,
		CommitTimestamp: env.Timestamp,
		Record:          env.Payload,
	}, nil
}

// parseEvents reads a comma separated event filter. An empty filter or "*"
// selects every change type.
func parseEvents(raw string) (map[string]bool, error) {
	events := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		ev := strings.ToUpper(strings.TrimSpace(part))
		switch ev {
		case "", "*":
		case ChangeInsert, ChangeUpdate:
			events[ev] = true
		default:
			return nil, fmt.Errorf("unsupported event %q", part)
		}
	}
	if len(events) == 0 {
		return nil, nil
	}
	return events, nil
}
