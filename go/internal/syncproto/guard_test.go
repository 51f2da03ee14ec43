package syncproto

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/models"
)

func testIdentity() Identity {
	return Identity{ParticipantID: uuid.New(), RoomID: uuid.New(), RoomCode: "AB12CD"}
}

func mashingOutcome(score int64) game.Outcome {
	return game.Outcome{GameType: models.GameTypeButtonMashing, Order: models.ScoreOrderDesc, Score: score}
}

func TestSubmissionGuardSubmitsOnceWhilePending(t *testing.T) {
	store := newMemStore()
	store.release = make(chan struct{})
	guard := NewSubmissionGuard(store, testIdentity())

	var launched atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if guard.Submit(context.Background(), mashingOutcome(40)) {
				launched.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), launched.Load())
	assert.Equal(t, GuardPending, guard.State())

	close(store.release)
	guard.Wait()

	submits, _ := store.counts()
	assert.Equal(t, 1, submits)
	assert.Equal(t, GuardDone, guard.State())
	assert.False(t, guard.Submit(context.Background(), mashingOutcome(40)))
}

func TestSubmissionGuardReleasesOnFailure(t *testing.T) {
	store := newMemStore()
	store.failNext = 1
	guard := NewSubmissionGuard(store, testIdentity())

	require.True(t, guard.Submit(context.Background(), mashingOutcome(7)))
	guard.Wait()
	assert.Equal(t, GuardIdle, guard.State())

	require.True(t, guard.Submit(context.Background(), mashingOutcome(7)))
	guard.Wait()
	assert.Equal(t, GuardDone, guard.State())

	submits, _ := store.counts()
	assert.Equal(t, 2, submits)
}

func TestSubmissionGuardSkipsSolo(t *testing.T) {
	store := newMemStore()
	guard := NewSubmissionGuard(store, Identity{})

	assert.False(t, guard.Submit(context.Background(), mashingOutcome(1)))
	guard.Wait()
	submits, _ := store.counts()
	assert.Zero(t, submits)
	assert.Equal(t, GuardIdle, guard.State())
}

func TestSubmissionGuardRefetchesAfterSuccess(t *testing.T) {
	store := newMemStore()
	id := testIdentity()
	other := uuid.New()
	store.put(id.RoomID, other, models.GameTypeButtonMashing, 55)

	guard := NewSubmissionGuard(store, id)
	var got []models.GameResult
	guard.OnResults(func(list []models.GameResult) { got = list })

	require.True(t, guard.Submit(context.Background(), mashingOutcome(40)))
	guard.Wait()

	require.Len(t, got, 2)
	board := game.BuildLeaderboard(got, models.ScoreOrderDesc)
	rank, ok := board.RankOf(id.ParticipantID)
	require.True(t, ok)
	assert.Equal(t, 2, rank)
}
