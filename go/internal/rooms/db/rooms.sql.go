package db

import (
	"context"

	"github.com/google/uuid"
)

const createRoom = `
INSERT INTO rooms (id, code, name)
VALUES ($1, $2, $3)
RETURNING id, code, name, created_at
`

type CreateRoomParams struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

func (q *Queries) CreateRoom(ctx context.Context, arg CreateRoomParams) (Room, error) {
	row := q.db.QueryRowContext(ctx, createRoom, arg.ID, arg.Code, arg.Name)
	var i Room
	err := row.Scan(&i.ID, &i.Code, &i.Name, &i.CreatedAt)
	return i, err
}

const getRoomByCode = `
SELECT id, code, name, created_at
FROM rooms
WHERE code = $1
`

func (q *Queries) GetRoomByCode(ctx context.Context, code string) (Room, error) {
	row := q.db.QueryRowContext(ctx, getRoomByCode, code)
	var i Room
	err := row.Scan(&i.ID, &i.Code, &i.Name, &i.CreatedAt)
	return i, err
}

const getRoomByCodeForUpdate = `
SELECT id, code, name, created_at
FROM rooms
WHERE code = $1
FOR UPDATE
`

// GetRoomByCodeForUpdate locks the room row until the transaction ends.
func (q *Queries) GetRoomByCodeForUpdate(ctx context.Context, code string) (Room, error) {
	row := q.db.QueryRowContext(ctx, getRoomByCodeForUpdate, code)
	var i Room
	err := row.Scan(&i.ID, &i.Code, &i.Name, &i.CreatedAt)
	return i, err
}

const listRooms = `
SELECT id, code, name, created_at
FROM rooms
ORDER BY created_at DESC, id
`

func (q *Queries) ListRooms(ctx context.Context) ([]Room, error) {
	rows, err := q.db.QueryContext(ctx, listRooms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Room
	for rows.Next() {
		var i Room
		if err := rows.Scan(&i.ID, &i.Code, &i.Name, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRoomMembers = `
SELECT m.room_id, p.id, p.name, p.restaurant_candidate, p.created_at, p.updated_at, m.created_at
FROM room_members m
JOIN participants p ON p.id = m.participant_id
WHERE m.room_id = $1
ORDER BY m.created_at, p.id
`

func (q *Queries) ListRoomMembers(ctx context.Context, roomID uuid.UUID) ([]RoomMember, error) {
	rows, err := q.db.QueryContext(ctx, listRoomMembers, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RoomMember
	for rows.Next() {
		var i RoomMember
		if err := rows.Scan(
			&i.RoomID,
			&i.ParticipantID,
			&i.Name,
			&i.RestaurantCandidate,
			&i.ParticipantCreated,
			&i.ParticipantUpdated,
			&i.JoinedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countRoomMembers = `
SELECT count(*) FROM room_members WHERE room_id = $1
`

func (q *Queries) CountRoomMembers(ctx context.Context, roomID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRoomMembers, roomID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const memberExists = `
SELECT EXISTS (
    SELECT 1 FROM room_members WHERE room_id = $1 AND participant_id = $2
)
`

type MemberParams struct {
	RoomID        uuid.UUID `json:"room_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
}

func (q *Queries) MemberExists(ctx context.Context, arg MemberParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, memberExists, arg.RoomID, arg.ParticipantID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const addRoomMember = `
INSERT INTO room_members (room_id, participant_id)
VALUES ($1, $2)
`

func (q *Queries) AddRoomMember(ctx context.Context, arg MemberParams) error {
	_, err := q.db.ExecContext(ctx, addRoomMember, arg.RoomID, arg.ParticipantID)
	return err
}

const deleteRoomMember = `
DELETE FROM room_members
WHERE room_id = $1 AND participant_id = $2
`

func (q *Queries) DeleteRoomMember(ctx context.Context, arg MemberParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRoomMember, arg.RoomID, arg.ParticipantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
