package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const fetchOutboxByID = `
SELECT id, room_id, event_type, payload, created_at, sent_at
FROM result_outbox
WHERE id = $1
`

func (q *Queries) FetchOutboxByID(ctx context.Context, id uuid.UUID) (ResultOutbox, error) {
	row := q.db.QueryRowContext(ctx, fetchOutboxByID, id)
	var i ResultOutbox
	err := row.Scan(
		&i.ID,
		&i.RoomID,
		&i.EventType,
		&i.Payload,
		&i.CreatedAt,
		&i.SentAt,
	)
	return i, err
}

const fetchUnsentOutbox = `
SELECT id, room_id, event_type, payload, created_at, sent_at
FROM result_outbox
WHERE sent_at IS NULL
ORDER BY created_at
LIMIT $1
`

func (q *Queries) FetchUnsentOutbox(ctx context.Context, limit int32) ([]ResultOutbox, error) {
	rows, err := q.db.QueryContext(ctx, fetchUnsentOutbox, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ResultOutbox
	for rows.Next() {
		var i ResultOutbox
		if err := rows.Scan(
			&i.ID,
			&i.RoomID,
			&i.EventType,
			&i.Payload,
			&i.CreatedAt,
			&i.SentAt,
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

const markOutboxSent = `
UPDATE result_outbox
SET sent_at = now()
WHERE id = $1 AND sent_at IS NULL
`

func (q *Queries) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, markOutboxSent, id)
	return err
}

const countUnsentOutbox = `
SELECT count(*) FROM result_outbox WHERE sent_at IS NULL
`

func (q *Queries) CountUnsentOutbox(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countUnsentOutbox)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const purgeSentOutbox = `
DELETE FROM result_outbox
WHERE sent_at IS NOT NULL AND sent_at < $1
`

func (q *Queries) PurgeSentOutbox(ctx context.Context, before time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, purgeSentOutbox, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
