package syncproto

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

const (
	paramUserID      = "userId"
	paramRoomCode    = "roomCode"
	paramJoinedCount = "joinedUserCount"
	// written by older room pages
	paramJoinedCountLegacy = "joindUserCount"
)

// LaunchParams are captured when a room dispatches its members into a game.
// JoinedUserCount is the number of results the round waits for and is never
// reconciled with later membership changes.
type LaunchParams struct {
	UserID          uuid.UUID
	RoomCode        string
	JoinedUserCount int
}

// Solo reports whether the game was opened without a room.
func (p LaunchParams) Solo() bool {
	return p.UserID == uuid.Nil || p.RoomCode == ""
}

// ParseLaunchParams reads launch parameters from a query string. Missing
// room parameters are not an error and yield a solo launch.
func ParseLaunchParams(q url.Values) (LaunchParams, error) {
	var p LaunchParams
	if raw := q.Get(paramUserID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return LaunchParams{}, fmt.Errorf("invalid %s: %w", paramUserID, err)
		}
		p.UserID = id
	}
	p.RoomCode = q.Get(paramRoomCode)

	raw := q.Get(paramJoinedCount)
	if raw == "" {
		raw = q.Get(paramJoinedCountLegacy)
	}
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return LaunchParams{}, fmt.Errorf("invalid %s: %q", paramJoinedCount, raw)
		}
		p.JoinedUserCount = n
	}
	return p, nil
}

// Values encodes the parameters with the canonical key names.
func (p LaunchParams) Values() url.Values {
	q := url.Values{}
	if p.UserID != uuid.Nil {
		q.Set(paramUserID, p.UserID.String())
	}
	if p.RoomCode != "" {
		q.Set(paramRoomCode, p.RoomCode)
	}
	q.Set(paramJoinedCount, strconv.Itoa(p.JoinedUserCount))
	return q
}

// URL returns route with the parameters attached.
func (p LaunchParams) URL(route string) string {
	return route + "?" + p.Values().Encode()
}
