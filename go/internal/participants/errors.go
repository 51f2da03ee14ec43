package participants

import "errors"

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInvalidParticipant  = errors.New("invalid participant")
)
