package models

import "fmt"

// GameType identifies one of the minigames
type GameType string

const (
	GameTypeAvoidance      GameType = "avoidance-game"
	GameTypeButtonMashing  GameType = "button-mashing"
	GameTypeColorChallenge GameType = "color-challenge"
	GameTypeTimingStop     GameType = "timing-stop"
)

// GameTypes lists every game in selector order.
var GameTypes = []GameType{
	GameTypeAvoidance,
	GameTypeButtonMashing,
	GameTypeColorChallenge,
	GameTypeTimingStop,
}

// ScoreOrder tells which direction of score wins
type ScoreOrder string

const (
	// ScoreOrderAsc means the lowest score wins.
	ScoreOrderAsc ScoreOrder = "asc"
	// ScoreOrderDesc means the highest score wins.
	ScoreOrderDesc ScoreOrder = "desc"
)

// ParseGameType validates a game-type tag.
func ParseGameType(s string) (GameType, error) {
	for _, gt := range GameTypes {
		if string(gt) == s {
			return gt, nil
		}
	}
	return "", fmt.Errorf("unknown game type %q", s)
}

// Route returns the page route of the game.
func (g GameType) Route() string {
	return "/games/" + string(g)
}

// Order returns the score direction of the game.
func (g GameType) Order() ScoreOrder {
	if g == GameTypeTimingStop {
		return ScoreOrderAsc
	}
	return ScoreOrderDesc
}
