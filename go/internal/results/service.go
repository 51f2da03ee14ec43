package results

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/rpc"
)

// ResultsApp defines what the service layer needs from the app
type ResultsApp interface {
	SubmitResult(ctx context.Context, req SubmitResultRequest) (*models.GameResult, bool, error)
	ListResults(ctx context.Context, roomID uuid.UUID, gameType models.GameType) ([]models.GameResult, error)
	GetLeaderboard(ctx context.Context, roomID uuid.UUID, gameType models.GameType) (game.Leaderboard, error)
}

// Service implements rpc.ResultServiceHandler
type Service struct {
	app ResultsApp
}

func NewService(app ResultsApp) *Service {
	return &Service{app: app}
}

var _ rpc.ResultServiceHandler = (*Service)(nil)

func (s *Service) SubmitResult(ctx context.Context, req *connect.Request[rpc.SubmitResultRequest]) (*connect.Response[rpc.SubmitResultResponse], error) {
	roomID, participantID, err := parseIDs(req.Msg.RoomID, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}
	result, created, err := s.app.SubmitResult(ctx, SubmitResultRequest{
		RoomID:        roomID,
		ParticipantID: participantID,
		GameType:      models.GameType(req.Msg.GameType),
		Score:         req.Msg.Score,
		Details:       req.Msg.Details,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.SubmitResultResponse{Result: ResultToRPC(result), Created: created}), nil
}

func (s *Service) ListResults(ctx context.Context, req *connect.Request[rpc.ListResultsRequest]) (*connect.Response[rpc.ListResultsResponse], error) {
	roomID, err := uuid.Parse(req.Msg.RoomID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	list, err := s.app.ListResults(ctx, roomID, models.GameType(req.Msg.GameType))
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]rpc.GameResult, 0, len(list))
	for i := range list {
		out = append(out, ResultToRPC(&list[i]))
	}
	return connect.NewResponse(&rpc.ListResultsResponse{Results: out}), nil
}

func (s *Service) GetLeaderboard(ctx context.Context, req *connect.Request[rpc.GetLeaderboardRequest]) (*connect.Response[rpc.GetLeaderboardResponse], error) {
	roomID, err := uuid.Parse(req.Msg.RoomID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	board, err := s.app.GetLeaderboard(ctx, roomID, models.GameType(req.Msg.GameType))
	if err != nil {
		return nil, toConnectError(err)
	}
	entries := make([]rpc.LeaderboardEntry, 0, board.Len())
	for i := range board.Entries {
		entries = append(entries, rpc.LeaderboardEntry{Rank: board.Ranks[i], Result: ResultToRPC(&board.Entries[i])})
	}
	return connect.NewResponse(&rpc.GetLeaderboardResponse{Order: string(board.Order), Entries: entries}), nil
}

// ResultToRPC converts a result to its wire form.
func ResultToRPC(r *models.GameResult) rpc.GameResult {
	out := rpc.GameResult{
		ID:              r.ID.String(),
		RoomID:          r.RoomID.String(),
		ParticipantID:   r.ParticipantID.String(),
		ParticipantName: r.ParticipantName,
		GameType:        string(r.GameType),
		Score:           r.Score,
		Details:         r.Details,
	}
	if !r.CreatedAt.IsZero() {
		t := r.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

// ResultFromRPC converts the wire form back to a model. Malformed ids become
// uuid.Nil.
func ResultFromRPC(r rpc.GameResult) models.GameResult {
	out := models.GameResult{
		ParticipantName: r.ParticipantName,
		GameType:        models.GameType(r.GameType),
		Score:           r.Score,
		Details:         r.Details,
	}
	out.ID, _ = uuid.Parse(r.ID)
	out.RoomID, _ = uuid.Parse(r.RoomID)
	out.ParticipantID, _ = uuid.Parse(r.ParticipantID)
	if r.CreatedAt != nil {
		out.CreatedAt = r.CreatedAt.In(time.UTC)
	}
	return out
}

func parseIDs(roomID, participantID string) (uuid.UUID, uuid.UUID, error) {
	room, err := uuid.Parse(roomID)
	if err != nil {
		return uuid.Nil, uuid.Nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	participant, err := uuid.Parse(participantID)
	if err != nil {
		return uuid.Nil, uuid.Nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return room, participant, nil
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidResult):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ErrRoomNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
