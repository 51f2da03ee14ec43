package participants

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/rpc"
)

// ParticipantsApp defines what the service layer needs from the app
type ParticipantsApp interface {
	CreateParticipant(ctx context.Context, req CreateParticipantRequest) (*models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, id uuid.UUID, req UpdateParticipantRequest) (*models.Participant, error)
	DeleteParticipant(ctx context.Context, id uuid.UUID) error
}

// Service implements rpc.ParticipantServiceHandler
type Service struct {
	app ParticipantsApp
}

func NewService(app ParticipantsApp) *Service {
	return &Service{app: app}
}

var _ rpc.ParticipantServiceHandler = (*Service)(nil)

func (s *Service) CreateParticipant(ctx context.Context, req *connect.Request[rpc.CreateParticipantRequest]) (*connect.Response[rpc.CreateParticipantResponse], error) {
	p, err := s.app.CreateParticipant(ctx, CreateParticipantRequest{
		Name:                req.Msg.Name,
		RestaurantCandidate: req.Msg.RestaurantCandidate,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.CreateParticipantResponse{Participant: ParticipantToRPC(p)}), nil
}

func (s *Service) GetParticipant(ctx context.Context, req *connect.Request[rpc.GetParticipantRequest]) (*connect.Response[rpc.GetParticipantResponse], error) {
	id, err := uuid.Parse(req.Msg.ID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	p, err := s.app.GetParticipant(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.GetParticipantResponse{Participant: ParticipantToRPC(p)}), nil
}

func (s *Service) UpdateParticipant(ctx context.Context, req *connect.Request[rpc.UpdateParticipantRequest]) (*connect.Response[rpc.UpdateParticipantResponse], error) {
	id, err := uuid.Parse(req.Msg.ID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	p, err := s.app.UpdateParticipant(ctx, id, UpdateParticipantRequest{
		Name:                req.Msg.Name,
		RestaurantCandidate: req.Msg.RestaurantCandidate,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.UpdateParticipantResponse{Participant: ParticipantToRPC(p)}), nil
}

func (s *Service) DeleteParticipant(ctx context.Context, req *connect.Request[rpc.DeleteParticipantRequest]) (*connect.Response[rpc.DeleteParticipantResponse], error) {
	id, err := uuid.Parse(req.Msg.ID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err := s.app.DeleteParticipant(ctx, id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.DeleteParticipantResponse{}), nil
}

// ParticipantToRPC converts a participant to its wire form.
func ParticipantToRPC(p *models.Participant) rpc.Participant {
	return rpc.Participant{
		ID:                  p.ID.String(),
		Name:                p.Name,
		RestaurantCandidate: p.RestaurantCandidate,
		CreatedAt:           p.CreatedAt,
	}
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, ErrParticipantNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrInvalidParticipant):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
