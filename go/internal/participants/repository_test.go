package participants

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/participants/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	rows    map[uuid.UUID]db.Participant
	updated db.UpdateParticipantParams
}

func (f *fakeQuerier) CreateParticipant(_ context.Context, arg db.CreateParticipantParams) (db.Participant, error) {
	p := db.Participant{ID: arg.ID, Name: arg.Name, RestaurantCandidate: arg.RestaurantCandidate}
	f.rows[arg.ID] = p
	return p, nil
}

func (f *fakeQuerier) GetParticipant(_ context.Context, id uuid.UUID) (db.Participant, error) {
	p, ok := f.rows[id]
	if !ok {
		return db.Participant{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeQuerier) UpdateParticipant(_ context.Context, arg db.UpdateParticipantParams) (db.Participant, error) {
	f.updated = arg
	p, ok := f.rows[arg.ID]
	if !ok {
		return db.Participant{}, sql.ErrNoRows
	}
	if arg.Name.Valid {
		p.Name = arg.Name.String
	}
	if arg.RestaurantCandidate.Valid {
		p.RestaurantCandidate = arg.RestaurantCandidate.String
	}
	f.rows[arg.ID] = p
	return p, nil
}

func (f *fakeQuerier) DeleteParticipant(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	q := &fakeQuerier{rows: map[uuid.UUID]db.Participant{}}
	repo := NewRepository(q)

	p, err := repo.CreateParticipant(ctx, CreateParticipantRequest{Name: "ken", RestaurantCandidate: "カレー"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)

	updated, err := repo.UpdateParticipant(ctx, p.ID, UpdateParticipantRequest{RestaurantCandidate: ptr("そば")})
	require.NoError(t, err)
	assert.Equal(t, "ken", updated.Name)
	assert.Equal(t, "そば", updated.RestaurantCandidate)
	assert.False(t, q.updated.Name.Valid)

	require.NoError(t, repo.DeleteParticipant(ctx, p.ID))
	assert.ErrorIs(t, repo.DeleteParticipant(ctx, p.ID), ErrParticipantNotFound)

	_, err = repo.GetParticipant(ctx, p.ID)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
	_, err = repo.UpdateParticipant(ctx, p.ID, UpdateParticipantRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}
