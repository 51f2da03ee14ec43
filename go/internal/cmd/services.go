package main

import (
	"context"
	"database/sql"

	"github.com/mcdev12/meshiroyale/go/clients/hotpepper_client"
	"github.com/mcdev12/meshiroyale/go/clients/nominatim_client"
	"github.com/mcdev12/meshiroyale/go/internal/participants"
	participantsdb "github.com/mcdev12/meshiroyale/go/internal/participants/db"
	"github.com/mcdev12/meshiroyale/go/internal/places"
	"github.com/mcdev12/meshiroyale/go/internal/results"
	resultsdb "github.com/mcdev12/meshiroyale/go/internal/results/db"
	"github.com/mcdev12/meshiroyale/go/internal/rooms"
	roomsdb "github.com/mcdev12/meshiroyale/go/internal/rooms/db"
	"github.com/mcdev12/meshiroyale/go/internal/rpc"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Participants *participants.Service
	Rooms        *rooms.Service
	Results      *results.Service
	Invites      *rooms.InviteHandler
	Places       *places.Handler
	HealthChecks []rpc.HealthCheck
}

func setupServices(database *sql.DB, config Config) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	// Participants
	participantQueries := participantsdb.New(database)
	participantRepo := participants.NewRepository(participantQueries)
	participantApp := participants.NewApp(participantRepo)
	participantService := participants.NewService(participantApp)

	// Rooms
	roomQueries := roomsdb.New(database)
	roomRepo := rooms.NewRepository(database, roomQueries)
	roomApp := rooms.NewApp(roomRepo, config.Rooms)
	roomService := rooms.NewService(roomApp)

	// Results
	resultQueries := resultsdb.New(database)
	resultRepo := results.NewRepository(database, resultQueries)
	resultApp := results.NewApp(resultRepo)
	resultService := results.NewService(resultApp)

	// Places
	var gourmet places.Gourmet
	if key := getEnv("HOTPEPPER_API_KEY", ""); key != "" {
		gourmet = hotpepper_client.NewHotPepperClient(key)
	} else {
		log.Warn().Msg("HOTPEPPER_API_KEY not set, restaurant search disabled")
	}
	geocoder := nominatim_client.NewNominatimClient(
		getEnv("NOMINATIM_URL", nominatim_client.BaseURL),
		getEnv("NOMINATIM_USER_AGENT", nominatim_client.DefaultUserAgent),
	)
	placesApp := places.NewApp(gourmet, geocoder)

	return &Services{
		Participants: participantService,
		Rooms:        roomService,
		Results:      resultService,
		Invites:      rooms.NewInviteHandler(roomApp, getEnv("PUBLIC_BASE_URL", config.Invite.BaseURL)),
		Places:       places.NewHandler(placesApp),
		HealthChecks: []rpc.HealthCheck{
			func(ctx context.Context) error { return database.PingContext(ctx) },
		},
	}
}
