package rooms

import (
	"context"
	"fmt"
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

func (m *MockRepository) CreateRoom(ctx context.Context, code, name string) (*models.Room, error) {
	args := m.Called(ctx, code, name)
	r, _ := args.Get(0).(*models.Room)
	return r, args.Error(1)
}

func (m *MockRepository) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	args := m.Called(ctx, code)
	r, _ := args.Get(0).(*models.Room)
	return r, args.Error(1)
}

func (m *MockRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.Room)
	return r, args.Error(1)
}

func (m *MockRepository) JoinRoom(ctx context.Context, code string, participantID uuid.UUID, capacity int) (*models.Room, error) {
	args := m.Called(ctx, code, participantID, capacity)
	r, _ := args.Get(0).(*models.Room)
	return r, args.Error(1)
}

func (m *MockRepository) LeaveRoom(ctx context.Context, code string, participantID uuid.UUID) error {
	args := m.Called(ctx, code, participantID)
	return args.Error(0)
}

func sequence(codes ...string) CodeGenerator {
	i := 0
	return func(n int) (string, error) {
		if i >= len(codes) {
			return "", fmt.Errorf("out of codes")
		}
		c := codes[i]
		i++
		return c, nil
	}
}

func TestCreateRoomGeneratesCodeAndDefaultName(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	want := &models.Room{ID: uuid.New(), Code: "AB12CD", Name: models.DefaultRoomName}
	repo.On("CreateRoom", ctx, "AB12CD", models.DefaultRoomName).Return(want, nil)

	room, err := NewApp(repo, Config{}).WithCodeGenerator(sequence("AB12CD")).CreateRoom(ctx, CreateRoomRequest{})

	require.NoError(t, err)
	assert.Equal(t, want, room)
	repo.AssertExpectations(t)
}

func TestCreateRoomRetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("CreateRoom", ctx, "AAAAAA", "lunch").Return(nil, ErrCodeTaken).Once()
	repo.On("CreateRoom", ctx, "BBBBBB", "lunch").Return(&models.Room{Code: "BBBBBB"}, nil).Once()

	room, err := NewApp(repo, Config{}).
		WithCodeGenerator(sequence("AAAAAA", "BBBBBB")).
		CreateRoom(ctx, CreateRoomRequest{Name: " lunch "})

	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", room.Code)
	repo.AssertExpectations(t)
}

func TestCreateRoomGivesUpAfterBoundedAttempts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("CreateRoom", ctx, mock.Anything, mock.Anything).Return(nil, ErrCodeTaken)

	_, err := NewApp(repo, Config{CodeAttempts: 2}).
		WithCodeGenerator(sequence("AAAAAA", "BBBBBB", "CCCCCC")).
		CreateRoom(ctx, CreateRoomRequest{})

	assert.ErrorIs(t, err, ErrCodeTaken)
	repo.AssertNumberOfCalls(t, "CreateRoom", 2)
}

func TestCreateRoomWithExplicitCode(t *testing.T) {
	ctx := context.Background()

	t.Run("normalized and not retried", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CreateRoom", ctx, "ROOM1", models.DefaultRoomName).Return(nil, ErrCodeTaken).Once()

		_, err := NewApp(repo, Config{}).CreateRoom(ctx, CreateRoomRequest{Code: " room1 "})

		assert.ErrorIs(t, err, ErrCodeTaken)
		repo.AssertExpectations(t)
	})

	t.Run("invalid characters", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := NewApp(repo, Config{}).CreateRoom(ctx, CreateRoomRequest{Code: "ab-12"})

		assert.ErrorIs(t, err, ErrInvalidCode)
		repo.AssertNotCalled(t, "CreateRoom", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestJoinRoomPassesCapacity(t *testing.T) {
	ctx := context.Background()
	pid := uuid.New()
	repo := new(MockRepository)
	repo.On("JoinRoom", ctx, "AB12CD", pid, 6).Return(&models.Room{Code: "AB12CD"}, nil)

	_, err := NewApp(repo, Config{Capacity: 6}).JoinRoom(ctx, "ab12cd", pid)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestJoinRoomErrors(t *testing.T) {
	ctx := context.Background()
	for _, sentinel := range []error{ErrRoomNotFound, ErrAlreadyJoined, ErrRoomFull} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			pid := uuid.New()
			repo := new(MockRepository)
			repo.On("JoinRoom", ctx, "AB12CD", pid, DefaultConfig().Capacity).Return(nil, sentinel)

			_, err := NewApp(repo, Config{}).JoinRoom(ctx, "AB12CD", pid)

			assert.ErrorIs(t, err, sentinel)
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "ab12cd", want: "AB12CD"},
		{in: "  XYZ  ", want: "XYZ"},
		{in: "", wantErr: true},
		{in: "ルーム", wantErr: true},
		{in: "ABCDEFGHIJKLMNOPQ", wantErr: true},
	}
	for _, tc := range tests {
		got, err := NormalizeCode(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidCode, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for range 50 {
		code, err := GenerateCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		_, err = NormalizeCode(code)
		assert.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}
