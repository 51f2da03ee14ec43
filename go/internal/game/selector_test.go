package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

func TestSelectGame(t *testing.T) {
	tests := []struct {
		code string
		want models.GameType
	}{
		{code: "", want: models.GameTypeAvoidance},
		{code: "AAAAAA", want: models.GameTypeButtonMashing}, // 65*21 = 1365
		{code: "ABCXYZ", want: models.GameTypeTimingStop},    // 1735
		{code: "AB12CD", want: models.GameTypeTimingStop},    // 1287
		{code: "B", want: models.GameTypeColorChallenge},     // 66
		{code: "D", want: models.GameTypeAvoidance},          // 68
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectGame(tt.code))
		})
	}
}

func TestSelectGameIsPure(t *testing.T) {
	first := SelectGame("ABCXYZ")
	second := SelectGame("ABCXYZ")
	assert.Equal(t, first, second)
	assert.Equal(t, "/games/timing-stop", SelectRoute("ABCXYZ"))
}

func TestSelectGameUsesUTF16CodeUnits(t *testing.T) {
	// U+1F600 is a surrogate pair: 0xD83D*1 + 0xDE00*2 = 55357 + 113664
	assert.Equal(t, models.GameTypeButtonMashing, SelectGame("😀"))
}
