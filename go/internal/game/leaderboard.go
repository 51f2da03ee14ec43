package game

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// Leaderboard is a sorted list of results with a parallel rank slice.
type Leaderboard struct {
	Order   models.ScoreOrder   `json:"order"`
	Entries []models.GameResult `json:"entries"`
	Ranks   []int               `json:"ranks"`
}

// BuildLeaderboard sorts results and assigns competition ranks (1,2,2,4).
//
// Ties on score are broken by creation time ascending, with records that
// carry a timestamp ahead of records that do not, then by participant id.
// The input slice is not modified.
func BuildLeaderboard(results []models.GameResult, order models.ScoreOrder) Leaderboard {
	if order != models.ScoreOrderAsc {
		order = models.ScoreOrderDesc
	}

	entries := slices.Clone(results)
	slices.SortStableFunc(entries, func(a, b models.GameResult) int {
		return compareResults(a, b, order)
	})

	ranks := make([]int, len(entries))
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			ranks[i] = ranks[i-1]
			continue
		}
		ranks[i] = i + 1
	}

	return Leaderboard{Order: order, Entries: entries, Ranks: ranks}
}

func compareResults(a, b models.GameResult, order models.ScoreOrder) int {
	if c := cmp.Compare(a.Score, b.Score); c != 0 {
		if order == models.ScoreOrderDesc {
			return -c
		}
		return c
	}

	aMissing, bMissing := a.CreatedAt.IsZero(), b.CreatedAt.IsZero()
	switch {
	case aMissing && !bMissing:
		return 1
	case !aMissing && bMissing:
		return -1
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}

	return strings.Compare(a.ParticipantID.String(), b.ParticipantID.String())
}

// RankOf returns the rank of the participant, or false when absent.
func (l Leaderboard) RankOf(participantID uuid.UUID) (int, bool) {
	for i, e := range l.Entries {
		if e.ParticipantID == participantID {
			return l.Ranks[i], true
		}
	}
	return 0, false
}

// Len returns the number of ranked entries.
func (l Leaderboard) Len() int {
	return len(l.Entries)
}
