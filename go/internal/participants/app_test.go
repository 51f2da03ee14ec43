package participants

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateParticipant(ctx context.Context, req CreateParticipantRequest) (*models.Participant, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*models.Participant)
	return p, args.Error(1)
}

func (m *MockRepository) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Participant)
	return p, args.Error(1)
}

func (m *MockRepository) UpdateParticipant(ctx context.Context, id uuid.UUID, req UpdateParticipantRequest) (*models.Participant, error) {
	args := m.Called(ctx, id, req)
	p, _ := args.Get(0).(*models.Participant)
	return p, args.Error(1)
}

func (m *MockRepository) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func ptr(s string) *string { return &s }

func TestCreateParticipant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		description string
		in          CreateParticipantRequest
		stored      CreateParticipantRequest
	}{
		{
			description: "keeps given fields",
			in:          CreateParticipantRequest{Name: "たろう", RestaurantCandidate: "ラーメン"},
			stored:      CreateParticipantRequest{Name: "たろう", RestaurantCandidate: "ラーメン"},
		},
		{
			description: "trims whitespace",
			in:          CreateParticipantRequest{Name: "  hana ", RestaurantCandidate: " sushi\n"},
			stored:      CreateParticipantRequest{Name: "hana", RestaurantCandidate: "sushi"},
		},
		{
			description: "defaults empty name",
			in:          CreateParticipantRequest{Name: "   "},
			stored:      CreateParticipantRequest{Name: models.DefaultParticipantName},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			repo := new(MockRepository)
			want := &models.Participant{ID: uuid.New(), Name: tc.stored.Name, RestaurantCandidate: tc.stored.RestaurantCandidate}
			repo.On("CreateParticipant", ctx, tc.stored).Return(want, nil)

			got, err := NewApp(repo).CreateParticipant(ctx, tc.in)

			require.NoError(t, err)
			assert.Equal(t, want, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestCreateParticipantRejectsLongName(t *testing.T) {
	repo := new(MockRepository)

	_, err := NewApp(repo).CreateParticipant(context.Background(), CreateParticipantRequest{Name: strings.Repeat("あ", maxFieldLength+1)})

	assert.ErrorIs(t, err, ErrInvalidParticipant)
	repo.AssertNotCalled(t, "CreateParticipant", mock.Anything, mock.Anything)
}

func TestUpdateParticipant(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("trims provided fields and leaves nil ones", func(t *testing.T) {
		repo := new(MockRepository)
		want := &models.Participant{ID: id, Name: "jiro"}
		repo.On("UpdateParticipant", ctx, id, UpdateParticipantRequest{Name: ptr("jiro")}).Return(want, nil)

		got, err := NewApp(repo).UpdateParticipant(ctx, id, UpdateParticipantRequest{Name: ptr(" jiro ")})

		require.NoError(t, err)
		assert.Equal(t, want, got)
		repo.AssertExpectations(t)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := NewApp(repo).UpdateParticipant(ctx, id, UpdateParticipantRequest{Name: ptr("  ")})

		assert.ErrorIs(t, err, ErrInvalidParticipant)
		repo.AssertNotCalled(t, "UpdateParticipant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("candidate may be cleared", func(t *testing.T) {
		repo := new(MockRepository)
		want := &models.Participant{ID: id, Name: "jiro"}
		repo.On("UpdateParticipant", ctx, id, UpdateParticipantRequest{RestaurantCandidate: ptr("")}).Return(want, nil)

		_, err := NewApp(repo).UpdateParticipant(ctx, id, UpdateParticipantRequest{RestaurantCandidate: ptr("   ")})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestDeleteParticipantPropagatesNotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("DeleteParticipant", ctx, id).Return(ErrParticipantNotFound)

	err := NewApp(repo).DeleteParticipant(ctx, id)

	assert.True(t, errors.Is(err, ErrParticipantNotFound))
	repo.AssertExpectations(t)
}
