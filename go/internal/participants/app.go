package participants

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/rs/zerolog/log"
)

const maxFieldLength = 100

// ParticipantsRepository defines what the app layer needs from storage
type ParticipantsRepository interface {
	CreateParticipant(ctx context.Context, req CreateParticipantRequest) (*models.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, id uuid.UUID, req UpdateParticipantRequest) (*models.Participant, error)
	DeleteParticipant(ctx context.Context, id uuid.UUID) error
}

// App handles participant business logic
type App struct {
	repo ParticipantsRepository
}

func NewApp(repo ParticipantsRepository) *App {
	return &App{repo: repo}
}

// CreateParticipant trims the input and falls back to the default name.
func (a *App) CreateParticipant(ctx context.Context, req CreateParticipantRequest) (*models.Participant, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.RestaurantCandidate = strings.TrimSpace(req.RestaurantCandidate)
	if req.Name == "" {
		req.Name = models.DefaultParticipantName
	}
	if err := validateLength(req.Name, req.RestaurantCandidate); err != nil {
		return nil, err
	}

	p, err := a.repo.CreateParticipant(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("participant_id", p.ID.String()).Str("name", p.Name).Msg("created participant")
	return p, nil
}

func (a *App) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	return a.repo.GetParticipant(ctx, id)
}

// UpdateParticipant applies a partial update. A name that trims to empty
// is rejected rather than reset.
func (a *App) UpdateParticipant(ctx context.Context, id uuid.UUID, req UpdateParticipantRequest) (*models.Participant, error) {
	var name, candidate string
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidParticipant)
		}
		req.Name = &name
	}
	if req.RestaurantCandidate != nil {
		candidate = strings.TrimSpace(*req.RestaurantCandidate)
		req.RestaurantCandidate = &candidate
	}
	if err := validateLength(name, candidate); err != nil {
		return nil, err
	}

	p, err := a.repo.UpdateParticipant(ctx, id, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("participant_id", p.ID.String()).Msg("updated participant")
	return p, nil
}

func (a *App) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeleteParticipant(ctx, id); err != nil {
		return err
	}
	log.Info().Str("participant_id", id.String()).Msg("deleted participant")
	return nil
}

func validateLength(name, candidate string) error {
	if utf8.RuneCountInString(name) > maxFieldLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidParticipant, maxFieldLength)
	}
	if utf8.RuneCountInString(candidate) > maxFieldLength {
		return fmt.Errorf("%w: restaurant candidate longer than %d characters", ErrInvalidParticipant, maxFieldLength)
	}
	return nil
}
