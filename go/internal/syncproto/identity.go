// Package syncproto is the client side of the result protocol: who the local
// player is, how a finished round is submitted exactly once, and how a tab
// learns that every participant of the round has reported a score.
package syncproto

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNoIdentity is returned when no room has been joined in this context.
var ErrNoIdentity = errors.New("no room identity")

// Identity is the local participant's seat in a room.
type Identity struct {
	ParticipantID uuid.UUID
	RoomID        uuid.UUID
	RoomCode      string
}

// Solo reports whether the identity lacks a room or participant, in which
// case results are neither submitted nor watched.
func (i Identity) Solo() bool {
	return i.ParticipantID == uuid.Nil || i.RoomID == uuid.Nil
}

// Context holds the identity for one client between joining and leaving a
// room. It is safe for concurrent use.
type Context struct {
	mu       sync.RWMutex
	identity *Identity
}

func NewContext() *Context {
	return &Context{}
}

// Join records the identity established by joining a room.
func (c *Context) Join(id Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = &id
}

// Leave clears the identity.
func (c *Context) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = nil
}

func (c *Context) Identity() (Identity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.identity == nil {
		return Identity{}, ErrNoIdentity
	}
	return *c.identity, nil
}
