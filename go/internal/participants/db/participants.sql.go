package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createParticipant = `
INSERT INTO participants (id, name, restaurant_candidate)
VALUES ($1, $2, $3)
RETURNING id, name, restaurant_candidate, created_at, updated_at
`

type CreateParticipantParams struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	RestaurantCandidate string    `json:"restaurant_candidate"`
}

func (q *Queries) CreateParticipant(ctx context.Context, arg CreateParticipantParams) (Participant, error) {
	row := q.db.QueryRowContext(ctx, createParticipant, arg.ID, arg.Name, arg.RestaurantCandidate)
	var i Participant
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.RestaurantCandidate,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getParticipant = `
SELECT id, name, restaurant_candidate, created_at, updated_at
FROM participants
WHERE id = $1
`

func (q *Queries) GetParticipant(ctx context.Context, id uuid.UUID) (Participant, error) {
	row := q.db.QueryRowContext(ctx, getParticipant, id)
	var i Participant
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.RestaurantCandidate,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateParticipant = `
UPDATE participants
SET name                 = COALESCE($2, name),
    restaurant_candidate = COALESCE($3, restaurant_candidate),
    updated_at           = now()
WHERE id = $1
RETURNING id, name, restaurant_candidate, created_at, updated_at
`

type UpdateParticipantParams struct {
	ID                  uuid.UUID      `json:"id"`
	Name                sql.NullString `json:"name"`
	RestaurantCandidate sql.NullString `json:"restaurant_candidate"`
}

func (q *Queries) UpdateParticipant(ctx context.Context, arg UpdateParticipantParams) (Participant, error) {
	row := q.db.QueryRowContext(ctx, updateParticipant, arg.ID, arg.Name, arg.RestaurantCandidate)
	var i Participant
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.RestaurantCandidate,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteParticipant = `
DELETE FROM participants
WHERE id = $1
`

func (q *Queries) DeleteParticipant(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteParticipant, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
