package participants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/participants/db"
	"github.com/mcdev12/meshiroyale/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateParticipant(ctx context.Context, arg db.CreateParticipantParams) (db.Participant, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (db.Participant, error)
	UpdateParticipant(ctx context.Context, arg db.UpdateParticipantParams) (db.Participant, error)
	DeleteParticipant(ctx context.Context, id uuid.UUID) (int64, error)
}

// Repository implements participant data access
type Repository struct {
	queries Querier
}

func NewRepository(querier Querier) *Repository {
	return &Repository{queries: querier}
}

func (r *Repository) CreateParticipant(ctx context.Context, req CreateParticipantRequest) (*models.Participant, error) {
	row, err := r.queries.CreateParticipant(ctx, db.CreateParticipantParams{
		ID:                  uuid.New(),
		Name:                req.Name,
		RestaurantCandidate: req.RestaurantCandidate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return dbParticipantToModel(row), nil
}

func (r *Repository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	row, err := r.queries.GetParticipant(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return dbParticipantToModel(row), nil
}

func (r *Repository) UpdateParticipant(ctx context.Context, id uuid.UUID, req UpdateParticipantRequest) (*models.Participant, error) {
	row, err := r.queries.UpdateParticipant(ctx, db.UpdateParticipantParams{
		ID:                  id,
		Name:                sqlutil.ToSqlString(req.Name),
		RestaurantCandidate: sqlutil.ToSqlString(req.RestaurantCandidate),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}
	return dbParticipantToModel(row), nil
}

// DeleteParticipant removes the participant. Room memberships go with it;
// submitted results stay.
func (r *Repository) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	n, err := r.queries.DeleteParticipant(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	if n == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func dbParticipantToModel(p db.Participant) *models.Participant {
	return &models.Participant{
		ID:                  p.ID,
		Name:                p.Name,
		RestaurantCandidate: p.RestaurantCandidate,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
