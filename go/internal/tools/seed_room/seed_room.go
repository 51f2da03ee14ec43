package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/meshiroyale/go/internal/dbconfig"
	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/models"
)

type guest struct {
	Name      string
	Candidate string
	Score     int64
}

var guests = []guest{
	{Name: "たろう", Candidate: "焼肉きんぐ", Score: 41},
	{Name: "はなこ", Candidate: "スシロー", Score: 55},
	{Name: "じろう", Candidate: "", Score: 41},
}

func main() {
	ctx := context.Background()
	code := os.Getenv("SEED_ROOM_CODE")
	if code == "" {
		code = "AB12CD"
	}

	// 1) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv("meshiroyale-seed")
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to %s: %v\n", cfg.Target(), err)
		os.Exit(1)
	}
	defer pool.Close()

	// 2) Seed room, members and one finished round in a single transaction
	var (
		roomID   uuid.UUID
		gameType = game.SelectGame(code)
		members  int
		results  int
	)
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            INSERT INTO rooms (id, code, name) VALUES ($1, $2, $3)
            ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
            RETURNING id
        `, uuid.New(), code, models.DefaultRoomName).Scan(&roomID)
		if err != nil {
			return fmt.Errorf("upsert room: %w", err)
		}

		for _, g := range guests {
			// stable ids keep reruns from adding members
			participantID := uuid.NewSHA1(uuid.NameSpaceURL, []byte("meshiroyale:"+code+":"+g.Name))
			if _, err := tx.Exec(ctx, `
                INSERT INTO participants (id, name, restaurant_candidate) VALUES ($1, $2, $3)
                ON CONFLICT (id) DO NOTHING
            `, participantID, g.Name, g.Candidate); err != nil {
				return fmt.Errorf("insert participant %s: %w", g.Name, err)
			}

			tag, err := tx.Exec(ctx, `
                INSERT INTO room_members (room_id, participant_id) VALUES ($1, $2)
                ON CONFLICT DO NOTHING
            `, roomID, participantID)
			if err != nil {
				return fmt.Errorf("insert member %s: %w", g.Name, err)
			}
			members += int(tag.RowsAffected())

			tag, err = tx.Exec(ctx, `
                INSERT INTO game_results (id, room_id, participant_id, participant_name, game_type, score)
                VALUES ($1, $2, $3, $4, $5, $6)
                ON CONFLICT (room_id, participant_id, game_type) DO NOTHING
            `, uuid.New(), roomID, participantID, g.Name, string(gameType), g.Score)
			if err != nil {
				return fmt.Errorf("insert result %s: %w", g.Name, err)
			}
			results += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}

	// 3) Print summary
	fmt.Printf(
		"Room seed complete: room %s (%s), game %s, %d members, %d results\n",
		code, roomID, gameType, members, results,
	)
}
