package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/meshiroyale/go/internal/rpc"
)

func setupServer(services *Services) *http.Server {
	mux := http.NewServeMux()

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	registerServices(mux, services)
	setupHealthCheck(mux)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", getEnv("PORT", "8080")),
		Handler:           h2c.NewHandler(c.Handler(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	// Register Participant service
	participantPath, participantHandler := rpc.NewParticipantServiceHandler(services.Participants)
	mux.Handle(participantPath, participantHandler)

	// Register Room service
	roomPath, roomHandler := rpc.NewRoomServiceHandler(services.Rooms)
	mux.Handle(roomPath, roomHandler)

	// Register Result service
	resultPath, resultHandler := rpc.NewResultServiceHandler(services.Results)
	mux.Handle(resultPath, resultHandler)

	// Register Health service
	healthPath, healthHandler := rpc.NewHealthServiceHandler(services.HealthChecks)
	mux.Handle(healthPath, healthHandler)

	services.Invites.RegisterRoutes(mux)
	services.Places.RegisterRoutes(mux)
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
