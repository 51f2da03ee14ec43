package syncproto

import (
	"context"
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/results"
	"github.com/mcdev12/meshiroyale/go/internal/rpc"
)

// Submission is one finished round as sent to the result store.
type Submission struct {
	RoomID        uuid.UUID
	ParticipantID uuid.UUID
	GameType      models.GameType
	Score         int64
	Details       json.RawMessage
}

// ResultStore is the authoritative result record store.
type ResultStore interface {
	Submit(ctx context.Context, s Submission) (models.GameResult, error)
	List(ctx context.Context, roomID uuid.UUID, gameType models.GameType) ([]models.GameResult, error)
}

// RoomResolver maps a room code to its id.
type RoomResolver interface {
	ResolveRoom(ctx context.Context, code string) (uuid.UUID, error)
}

// RPCStore talks to the API server over connect.
type RPCStore struct {
	results rpc.ResultServiceClient
	rooms   rpc.RoomServiceClient
}

// NewRPCStore creates a store for the API server at baseURL.
func NewRPCStore(httpClient connect.HTTPClient, baseURL string) *RPCStore {
	return &RPCStore{
		results: rpc.NewResultServiceClient(httpClient, baseURL),
		rooms:   rpc.NewRoomServiceClient(httpClient, baseURL),
	}
}

func (s *RPCStore) Submit(ctx context.Context, sub Submission) (models.GameResult, error) {
	res, err := s.results.SubmitResult(ctx, connect.NewRequest(&rpc.SubmitResultRequest{
		RoomID:        sub.RoomID.String(),
		ParticipantID: sub.ParticipantID.String(),
		GameType:      string(sub.GameType),
		Score:         sub.Score,
		Details:       sub.Details,
	}))
	if err != nil {
		return models.GameResult{}, fmt.Errorf("submit result: %w", err)
	}
	return results.ResultFromRPC(res.Msg.Result), nil
}

func (s *RPCStore) List(ctx context.Context, roomID uuid.UUID, gameType models.GameType) ([]models.GameResult, error) {
	res, err := s.results.ListResults(ctx, connect.NewRequest(&rpc.ListResultsRequest{
		RoomID:   roomID.String(),
		GameType: string(gameType),
	}))
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	out := make([]models.GameResult, 0, len(res.Msg.Results))
	for _, r := range res.Msg.Results {
		out = append(out, results.ResultFromRPC(r))
	}
	return out, nil
}

func (s *RPCStore) ResolveRoom(ctx context.Context, code string) (uuid.UUID, error) {
	res, err := s.rooms.GetRoom(ctx, connect.NewRequest(&rpc.GetRoomRequest{Code: code}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("get room %s: %w", code, err)
	}
	id, err := uuid.Parse(res.Msg.Room.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("room %s has invalid id: %w", code, err)
	}
	return id, nil
}
