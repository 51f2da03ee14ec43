package game

import "errors"

var (
	// ErrAlreadyStarted is returned when a one-shot session is started twice.
	ErrAlreadyStarted = errors.New("session already started")
	// ErrNotRunning is returned when input arrives outside the running state.
	ErrNotRunning = errors.New("session not running")
)
