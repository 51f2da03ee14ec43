package rooms

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/participants"
	"github.com/mcdev12/meshiroyale/go/internal/rpc"
)

// RoomsApp defines what the service layer needs from the app
type RoomsApp interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*models.Room, error)
	GetRoom(ctx context.Context, code string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	JoinRoom(ctx context.Context, code string, participantID uuid.UUID) (*models.Room, error)
	LeaveRoom(ctx context.Context, code string, participantID uuid.UUID) error
	SelectGame(code string) models.GameType
}

// Service implements rpc.RoomServiceHandler
type Service struct {
	app RoomsApp
}

func NewService(app RoomsApp) *Service {
	return &Service{app: app}
}

var _ rpc.RoomServiceHandler = (*Service)(nil)

func (s *Service) CreateRoom(ctx context.Context, req *connect.Request[rpc.CreateRoomRequest]) (*connect.Response[rpc.CreateRoomResponse], error) {
	room, err := s.app.CreateRoom(ctx, CreateRoomRequest{Code: req.Msg.Code, Name: req.Msg.Name})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.CreateRoomResponse{Room: roomToRPC(room)}), nil
}

func (s *Service) GetRoom(ctx context.Context, req *connect.Request[rpc.GetRoomRequest]) (*connect.Response[rpc.GetRoomResponse], error) {
	room, err := s.app.GetRoom(ctx, req.Msg.Code)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.GetRoomResponse{Room: roomToRPC(room)}), nil
}

func (s *Service) ListRooms(ctx context.Context, _ *connect.Request[rpc.ListRoomsRequest]) (*connect.Response[rpc.ListRoomsResponse], error) {
	rooms, err := s.app.ListRooms(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := make([]rpc.Room, 0, len(rooms))
	for i := range rooms {
		out = append(out, roomToRPC(&rooms[i]))
	}
	return connect.NewResponse(&rpc.ListRoomsResponse{Rooms: out}), nil
}

func (s *Service) JoinRoom(ctx context.Context, req *connect.Request[rpc.JoinRoomRequest]) (*connect.Response[rpc.JoinRoomResponse], error) {
	participantID, err := uuid.Parse(req.Msg.ParticipantID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	room, err := s.app.JoinRoom(ctx, req.Msg.Code, participantID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.JoinRoomResponse{Room: roomToRPC(room)}), nil
}

func (s *Service) LeaveRoom(ctx context.Context, req *connect.Request[rpc.LeaveRoomRequest]) (*connect.Response[rpc.LeaveRoomResponse], error) {
	participantID, err := uuid.Parse(req.Msg.ParticipantID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.app.LeaveRoom(ctx, req.Msg.Code, participantID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.LeaveRoomResponse{}), nil
}

func (s *Service) SelectGame(_ context.Context, req *connect.Request[rpc.SelectGameRequest]) (*connect.Response[rpc.SelectGameResponse], error) {
	gt := s.app.SelectGame(req.Msg.Code)
	return connect.NewResponse(&rpc.SelectGameResponse{GameType: string(gt), Route: gt.Route()}), nil
}

func roomToRPC(room *models.Room) rpc.Room {
	members := make([]rpc.Member, 0, len(room.Members))
	for i := range room.Members {
		members = append(members, rpc.Member{
			Participant: participants.ParticipantToRPC(&room.Members[i].Participant),
			JoinedAt:    room.Members[i].JoinedAt,
		})
	}
	return rpc.Room{
		ID:        room.ID.String(),
		Code:      room.Code,
		Name:      room.Name,
		CreatedAt: room.CreatedAt,
		Members:   members,
	}
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, participants.ErrParticipantNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrCodeTaken), errors.Is(err, ErrAlreadyJoined):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, ErrRoomFull):
		return connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, ErrInvalidCode):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ErrNotMember):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
