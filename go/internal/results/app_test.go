package results

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SubmitResult(ctx context.Context, req SubmitResultRequest) (*models.GameResult, bool, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*models.GameResult)
	return r, args.Bool(1), args.Error(2)
}

func (m *MockRepository) ListResults(ctx context.Context, roomID uuid.UUID, gameType models.GameType) ([]models.GameResult, error) {
	args := m.Called(ctx, roomID, gameType)
	r, _ := args.Get(0).([]models.GameResult)
	return r, args.Error(1)
}

func TestSubmitResultValidation(t *testing.T) {
	room, participant := uuid.New(), uuid.New()
	valid := SubmitResultRequest{RoomID: room, ParticipantID: participant, GameType: models.GameTypeButtonMashing, Score: 42}

	tests := []struct {
		description string
		mutate      func(r *SubmitResultRequest)
	}{
		{"unknown game type", func(r *SubmitResultRequest) { r.GameType = "rock-paper-scissors" }},
		{"negative score", func(r *SubmitResultRequest) { r.Score = -1 }},
		{"missing room", func(r *SubmitResultRequest) { r.RoomID = uuid.Nil }},
		{"missing participant", func(r *SubmitResultRequest) { r.ParticipantID = uuid.Nil }},
		{"details not an object", func(r *SubmitResultRequest) { r.Details = json.RawMessage(`[1,2]`) }},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			repo := new(MockRepository)
			req := valid
			tc.mutate(&req)

			_, _, err := NewApp(repo).SubmitResult(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidResult)
			repo.AssertNotCalled(t, "SubmitResult", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitResultStores(t *testing.T) {
	ctx := context.Background()
	req := SubmitResultRequest{
		RoomID:        uuid.New(),
		ParticipantID: uuid.New(),
		GameType:      models.GameTypeAvoidance,
		Score:         12345,
		Details:       json.RawMessage(`{"cleared":false,"survived_ms":12345}`),
	}
	stored := &models.GameResult{ID: uuid.New(), RoomID: req.RoomID, ParticipantID: req.ParticipantID, GameType: req.GameType, Score: req.Score}
	repo := new(MockRepository)
	repo.On("SubmitResult", ctx, req).Return(stored, true, nil)

	got, created, err := NewApp(repo).SubmitResult(ctx, req)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, stored, got)
	repo.AssertExpectations(t)
}

func TestGetLeaderboardUsesGameOrder(t *testing.T) {
	ctx := context.Background()
	room := uuid.New()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	list := []models.GameResult{
		{ParticipantID: a, Score: 300, CreatedAt: base},
		{ParticipantID: b, Score: 20, CreatedAt: base.Add(time.Second)},
		{ParticipantID: c, Score: 300, CreatedAt: base.Add(2 * time.Second)},
	}
	repo := new(MockRepository)
	repo.On("ListResults", ctx, room, models.GameTypeTimingStop).Return(list, nil)
	repo.On("ListResults", ctx, room, models.GameTypeButtonMashing).Return(list, nil)

	timing, err := NewApp(repo).GetLeaderboard(ctx, room, models.GameTypeTimingStop)
	require.NoError(t, err)
	assert.Equal(t, models.ScoreOrderAsc, timing.Order)
	assert.Equal(t, b, timing.Entries[0].ParticipantID)
	assert.Equal(t, []int{1, 2, 2}, timing.Ranks)

	mashing, err := NewApp(repo).GetLeaderboard(ctx, room, models.GameTypeButtonMashing)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, c, b}, []uuid.UUID{
		mashing.Entries[0].ParticipantID, mashing.Entries[1].ParticipantID, mashing.Entries[2].ParticipantID,
	})
	assert.Equal(t, []int{1, 1, 3}, mashing.Ranks)
}

func TestListResultsRejectsUnknownGame(t *testing.T) {
	_, err := NewApp(new(MockRepository)).ListResults(context.Background(), uuid.New(), "chess")
	assert.ErrorIs(t, err, ErrInvalidResult)
}
