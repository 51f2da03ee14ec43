package db

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const upsertGameResult = `
INSERT INTO game_results (id, room_id, participant_id, participant_name, game_type, score, details)
VALUES ($1, $2, $3, COALESCE((SELECT name FROM participants WHERE id = $3), ''), $4, $5, $6)
ON CONFLICT (room_id, participant_id, game_type) DO UPDATE
SET score      = EXCLUDED.score,
    details    = EXCLUDED.details,
    updated_at = now()
RETURNING id, room_id, participant_id, participant_name, game_type, score, details, created_at, updated_at, (xmax = 0) AS inserted
`

type UpsertGameResultParams struct {
	ID            uuid.UUID             `json:"id"`
	RoomID        uuid.UUID             `json:"room_id"`
	ParticipantID uuid.UUID             `json:"participant_id"`
	GameType      string                `json:"game_type"`
	Score         int64                 `json:"score"`
	Details       pqtype.NullRawMessage `json:"details"`
}

type UpsertGameResultRow struct {
	GameResult
	Inserted bool `json:"inserted"`
}

// UpsertGameResult writes one result per (room, participant, game type).
// Inserted is false when an existing row was overwritten.
func (q *Queries) UpsertGameResult(ctx context.Context, arg UpsertGameResultParams) (UpsertGameResultRow, error) {
	row := q.db.QueryRowContext(ctx, upsertGameResult,
		arg.ID,
		arg.RoomID,
		arg.ParticipantID,
		arg.GameType,
		arg.Score,
		arg.Details,
	)
	var i UpsertGameResultRow
	err := row.Scan(
		&i.ID,
		&i.RoomID,
		&i.ParticipantID,
		&i.ParticipantName,
		&i.GameType,
		&i.Score,
		&i.Details,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Inserted,
	)
	return i, err
}

const listGameResults = `
SELECT id, room_id, participant_id, participant_name, game_type, score, details, created_at, updated_at
FROM game_results
WHERE room_id = $1 AND game_type = $2
ORDER BY created_at, id
`

type ListGameResultsParams struct {
	RoomID   uuid.UUID `json:"room_id"`
	GameType string    `json:"game_type"`
}

func (q *Queries) ListGameResults(ctx context.Context, arg ListGameResultsParams) ([]GameResult, error) {
	rows, err := q.db.QueryContext(ctx, listGameResults, arg.RoomID, arg.GameType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GameResult
	for rows.Next() {
		var i GameResult
		if err := rows.Scan(
			&i.ID,
			&i.RoomID,
			&i.ParticipantID,
			&i.ParticipantName,
			&i.GameType,
			&i.Score,
			&i.Details,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const insertResultOutbox = `
INSERT INTO result_outbox (id, room_id, event_type, payload)
VALUES ($1, $2, $3, $4)
`

type InsertResultOutboxParams struct {
	ID        uuid.UUID       `json:"id"`
	RoomID    uuid.UUID       `json:"room_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
}

func (q *Queries) InsertResultOutbox(ctx context.Context, arg InsertResultOutboxParams) error {
	_, err := q.db.ExecContext(ctx, insertResultOutbox, arg.ID, arg.RoomID, arg.EventType, []byte(arg.Payload))
	return err
}
