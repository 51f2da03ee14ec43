package rooms

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrCodeTaken     = errors.New("room code already in use")
	ErrInvalidCode   = errors.New("invalid room code")
	ErrAlreadyJoined = errors.New("participant already joined the room")
	ErrNotMember     = errors.New("participant is not a member of the room")
	ErrRoomFull      = errors.New("room is full")
)
