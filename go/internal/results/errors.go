package results

import "errors"

var (
	ErrInvalidResult = errors.New("invalid game result")
	ErrRoomNotFound  = errors.New("room not found")
)
