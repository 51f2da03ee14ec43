package main

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/meshiroyale/go/internal/dbconfig"
	"github.com/mcdev12/meshiroyale/go/internal/migrations"
)

func setupDatabase(ctx context.Context, migrate bool) (*sql.DB, error) {
	dbConfig := dbconfig.NewConfigFromEnv("meshiroyale-api")

	database, err := dbConfig.Open(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("target", dbConfig.Target()).
		Int("max_open_conns", dbConfig.MaxOpenConns).
		Msg("connected to database")

	if migrate {
		if err := migrations.Up(database); err != nil {
			database.Close()
			return nil, err
		}
	}
	return database, nil
}
