package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/results/db"
	"github.com/mcdev12/meshiroyale/go/internal/sqlutil"
)

// Querier defines the read side the repository needs outside transactions
type Querier interface {
	ListGameResults(ctx context.Context, arg db.ListGameResultsParams) ([]db.GameResult, error)
}

// Repository implements result data access
type Repository struct {
	db      *sql.DB
	queries Querier
}

func NewRepository(database *sql.DB, querier Querier) *Repository {
	return &Repository{db: database, queries: querier}
}

// SubmitResult upserts the result and records a change event in the outbox
// within one transaction. created reports whether a new row was inserted.
func (r *Repository) SubmitResult(ctx context.Context, req SubmitResultRequest) (result *models.GameResult, created bool, err error) {
	err = sqlutil.Run(ctx, r.db, func(tx *sql.Tx) *db.Queries { return db.New(tx) }, func(q *db.Queries) error {
		row, err := q.UpsertGameResult(ctx, db.UpsertGameResultParams{
			ID:            uuid.New(),
			RoomID:        req.RoomID,
			ParticipantID: req.ParticipantID,
			GameType:      string(req.GameType),
			Score:         req.Score,
			Details:       sqlutil.ToRawMessage(req.Details),
		})
		if sqlutil.IsPgError(err, sqlutil.ForeignKeyViolation) {
			return ErrRoomNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to upsert result: %w", err)
		}

		result = dbResultToModel(row.GameResult)
		created = row.Inserted

		payload, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode change payload: %w", err)
		}
		eventType := EventUpdate
		if created {
			eventType = EventInsert
		}
		if err := q.InsertResultOutbox(ctx, db.InsertResultOutboxParams{
			ID:        uuid.New(),
			RoomID:    result.RoomID,
			EventType: eventType,
			Payload:   payload,
		}); err != nil {
			return fmt.Errorf("failed to write outbox: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

// ListResults returns the results of one game in one room, oldest first.
func (r *Repository) ListResults(ctx context.Context, roomID uuid.UUID, gameType models.GameType) ([]models.GameResult, error) {
	rows, err := r.queries.ListGameResults(ctx, db.ListGameResultsParams{
		RoomID:   roomID,
		GameType: string(gameType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	out := make([]models.GameResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, *dbResultToModel(row))
	}
	return out, nil
}

func dbResultToModel(row db.GameResult) *models.GameResult {
	return &models.GameResult{
		ID:              row.ID,
		RoomID:          row.RoomID,
		ParticipantID:   row.ParticipantID,
		ParticipantName: row.ParticipantName,
		GameType:        models.GameType(row.GameType),
		Score:           row.Score,
		Details:         sqlutil.FromRawMessage(row.Details),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
