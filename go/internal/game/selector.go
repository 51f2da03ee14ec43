package game

import (
	"unicode/utf16"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// SelectGame deterministically maps a room code onto one of the games.
// Every participant of a room computes the same answer without any
// coordination: sum(codeUnit * (index+1)) mod number of games.
// Code units are UTF-16 so that browsers and Go agree on non-ASCII codes.
func SelectGame(roomCode string) models.GameType {
	var hash int64
	for i, unit := range utf16.Encode([]rune(roomCode)) {
		hash += int64(unit) * int64(i+1)
	}
	if hash < 0 {
		hash = -hash
	}
	return models.GameTypes[hash%int64(len(models.GameTypes))]
}

// SelectRoute returns the page route of the game selected for roomCode.
func SelectRoute(roomCode string) string {
	return SelectGame(roomCode).Route()
}
