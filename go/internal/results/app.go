package results

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ResultsRepository defines what the app layer needs from storage
type ResultsRepository interface {
	SubmitResult(ctx context.Context, req SubmitResultRequest) (*models.GameResult, bool, error)
	ListResults(ctx context.Context, roomID uuid.UUID, gameType models.GameType) ([]models.GameResult, error)
}

// App handles result submission and ranking
type App struct {
	repo ResultsRepository
}

func NewApp(repo ResultsRepository) *App {
	return &App{repo: repo}
}

// SubmitResult validates and stores a result. Resubmitting for the same
// (room, participant, game type) overwrites the earlier record.
func (a *App) SubmitResult(ctx context.Context, req SubmitResultRequest) (*models.GameResult, bool, error) {
	if err := validateSubmit(req); err != nil {
		return nil, false, err
	}

	result, created, err := a.repo.SubmitResult(ctx, req)
	if err != nil {
		return nil, false, err
	}

	ev := log.Info()
	if !created {
		ev = log.Warn()
	}
	ev.Str("room_id", result.RoomID.String()).
		Str("participant_id", result.ParticipantID.String()).
		Str("game_type", string(result.GameType)).
		Int64("score", result.Score).
		Bool("created", created).
		Msg("stored game result")
	return result, created, nil
}

func (a *App) ListResults(ctx context.Context, roomID uuid.UUID, gameType models.GameType) ([]models.GameResult, error) {
	if _, err := models.ParseGameType(string(gameType)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	return a.repo.ListResults(ctx, roomID, gameType)
}

// GetLeaderboard ranks the results of one game in the game's score order.
func (a *App) GetLeaderboard(ctx context.Context, roomID uuid.UUID, gameType models.GameType) (game.Leaderboard, error) {
	results, err := a.ListResults(ctx, roomID, gameType)
	if err != nil {
		return game.Leaderboard{}, err
	}
	return game.BuildLeaderboard(results, gameType.Order()), nil
}

func validateSubmit(req SubmitResultRequest) error {
	if _, err := models.ParseGameType(string(req.GameType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	if req.RoomID == uuid.Nil || req.ParticipantID == uuid.Nil {
		return fmt.Errorf("%w: room and participant are required", ErrInvalidResult)
	}
	if req.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidResult, req.Score)
	}
	if len(req.Details) > 0 {
		var obj map[string]any
		if err := json.Unmarshal(req.Details, &obj); err != nil {
			return fmt.Errorf("%w: details must be a JSON object", ErrInvalidResult)
		}
	}
	return nil
}
