package rooms

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/participants"
	"github.com/mcdev12/meshiroyale/go/internal/rooms/db"
	"github.com/mcdev12/meshiroyale/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateRoom(ctx context.Context, arg db.CreateRoomParams) (db.Room, error)
	GetRoomByCode(ctx context.Context, code string) (db.Room, error)
	ListRooms(ctx context.Context) ([]db.Room, error)
	ListRoomMembers(ctx context.Context, roomID uuid.UUID) ([]db.RoomMember, error)
	DeleteRoomMember(ctx context.Context, arg db.MemberParams) (int64, error)
}

// Repository implements room data access
type Repository struct {
	db      *sql.DB
	queries Querier
}

func NewRepository(database *sql.DB, querier Querier) *Repository {
	return &Repository{db: database, queries: querier}
}

func (r *Repository) CreateRoom(ctx context.Context, code, name string) (*models.Room, error) {
	row, err := r.queries.CreateRoom(ctx, db.CreateRoomParams{
		ID:   uuid.New(),
		Code: code,
		Name: name,
	})
	if sqlutil.IsPgError(err, sqlutil.UniqueViolation) {
		return nil, ErrCodeTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	room := dbRoomToModel(row)
	room.Members = []models.Member{}
	return room, nil
}

// GetRoomByCode returns the room with its members in join order.
func (r *Repository) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	row, err := r.queries.GetRoomByCode(ctx, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return r.withMembers(ctx, r.queries, row)
}

func (r *Repository) ListRooms(ctx context.Context) ([]models.Room, error) {
	rows, err := r.queries.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	out := make([]models.Room, 0, len(rows))
	for _, row := range rows {
		room, err := r.withMembers(ctx, r.queries, row)
		if err != nil {
			return nil, err
		}
		out = append(out, *room)
	}
	return out, nil
}

// JoinRoom adds the participant to the room. The room row is locked for the
// duration of the check so concurrent joins cannot exceed capacity.
func (r *Repository) JoinRoom(ctx context.Context, code string, participantID uuid.UUID, capacity int) (*models.Room, error) {
	var room *models.Room
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) *db.Queries { return db.New(tx) }, func(q *db.Queries) error {
		row, err := q.GetRoomByCodeForUpdate(ctx, code)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		member := db.MemberParams{RoomID: row.ID, ParticipantID: participantID}
		exists, err := q.MemberExists(ctx, member)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if exists {
			return ErrAlreadyJoined
		}

		count, err := q.CountRoomMembers(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("failed to count members: %w", err)
		}
		if capacity > 0 && count >= int64(capacity) {
			return ErrRoomFull
		}

		err = q.AddRoomMember(ctx, member)
		switch {
		case sqlutil.IsPgError(err, sqlutil.ForeignKeyViolation):
			return participants.ErrParticipantNotFound
		case sqlutil.IsPgError(err, sqlutil.UniqueViolation):
			return ErrAlreadyJoined
		case err != nil:
			return fmt.Errorf("failed to add member: %w", err)
		}

		room, err = r.withMembers(ctx, q, row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *Repository) LeaveRoom(ctx context.Context, code string, participantID uuid.UUID) error {
	row, err := r.queries.GetRoomByCode(ctx, code)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}
	n, err := r.queries.DeleteRoomMember(ctx, db.MemberParams{RoomID: row.ID, ParticipantID: participantID})
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if n == 0 {
		return ErrNotMember
	}
	return nil
}

type memberLister interface {
	ListRoomMembers(ctx context.Context, roomID uuid.UUID) ([]db.RoomMember, error)
}

func (r *Repository) withMembers(ctx context.Context, q memberLister, row db.Room) (*models.Room, error) {
	members, err := q.ListRoomMembers(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	room := dbRoomToModel(row)
	room.Members = make([]models.Member, 0, len(members))
	for _, m := range members {
		room.Members = append(room.Members, models.Member{
			Participant: models.Participant{
				ID:                  m.ParticipantID,
				Name:                m.Name,
				RestaurantCandidate: m.RestaurantCandidate,
				CreatedAt:           m.ParticipantCreated,
				UpdatedAt:           m.ParticipantUpdated,
			},
			JoinedAt: m.JoinedAt,
		})
	}
	return room, nil
}

func dbRoomToModel(row db.Room) *models.Room {
	return &models.Room{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}
