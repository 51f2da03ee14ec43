package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"text/tabwriter"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/models"
	"github.com/mcdev12/meshiroyale/go/internal/places"
	"github.com/mcdev12/meshiroyale/go/internal/rpc"
	"github.com/mcdev12/meshiroyale/go/internal/syncproto"
)

func selectRoute(code string) string {
	return game.SelectRoute(code)
}

func runPlay(ctx context.Context, out io.Writer, cfg *Config) error {
	if cfg.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	tuning := game.DefaultTuning()
	if cfg.tuning != "" {
		t, err := game.LoadTuningFile(cfg.tuning)
		if err != nil {
			return err
		}
		tuning = t
	}

	seed := cfg.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1))

	httpClient := &http.Client{Timeout: 15 * time.Second}
	status, err := rpc.CheckHealth(ctx, httpClient, cfg.server)
	if err != nil {
		return fmt.Errorf("server %s is not reachable: %w", cfg.server, err)
	}
	log.Debug().Str("status", status).Msg("server healthy")

	participantsClient := rpc.NewParticipantServiceClient(httpClient, cfg.server)
	roomsClient := rpc.NewRoomServiceClient(httpClient, cfg.server)

	session := syncproto.NewContext()
	var params syncproto.LaunchParams
	if cfg.room != "" {
		me, err := createParticipant(ctx, participantsClient, cfg.name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "playing as %s (%s)\n", me.Name, me.ID)

		if cfg.lat != 0 {
			pickRestaurant(ctx, out, participantsClient, cfg, me.ID)
		}

		room, err := joinOrCreateRoom(ctx, roomsClient, cfg.room, me.ID)
		if err != nil {
			return err
		}
		expected := cfg.expected
		if expected == 0 {
			expected = len(room.Members)
		}
		params = syncproto.LaunchParams{
			UserID:          uuid.MustParse(me.ID),
			RoomCode:        room.Code,
			JoinedUserCount: expected,
		}
		defer func() { _ = leaveRoom(roomsClient, session, room.Code, me.ID) }()
	}

	gameType := syncproto.GameFor(params, models.GameType(cfg.game))
	fmt.Fprintf(out, "game: %s\n", params.URL(gameType.Route()))

	store := syncproto.NewRPCStore(httpClient, cfg.server)
	var opts []syncproto.WatcherOption
	if cfg.gateway != "" {
		opts = append(opts, syncproto.WithFeed(syncproto.NewWebSocketFeed(cfg.gateway)))
	}
	coordCfg := syncproto.DefaultCoordinatorConfig()
	coordCfg.Tuning = tuning
	coordCfg.Seed = seed

	coord := syncproto.NewCoordinator(
		session,
		store,
		store,
		syncproto.NewWatcher(store, opts...),
		clockwork.NewRealClock(),
		coordCfg,
	)
	coord.OnProgress = func(s syncproto.Snapshot) {
		fmt.Fprintf(out, "waiting for results: %d of %d\n", s.Received, s.Expected)
	}

	res, err := coord.Play(ctx, gameType, params, newInput(strategies[cfg.strategy], rng))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "score: %d\n", res.Outcome.Score)
	if res.Solo {
		return nil
	}
	printLeaderboard(out, res, params.UserID)
	return nil
}

func createParticipant(ctx context.Context, c rpc.ParticipantServiceClient, name string) (rpc.Participant, error) {
	res, err := c.CreateParticipant(ctx, connect.NewRequest(&rpc.CreateParticipantRequest{Name: name}))
	if err != nil {
		return rpc.Participant{}, fmt.Errorf("create participant: %w", err)
	}
	return res.Msg.Participant, nil
}

func joinOrCreateRoom(ctx context.Context, c rpc.RoomServiceClient, code, participantID string) (rpc.Room, error) {
	_, err := c.GetRoom(ctx, connect.NewRequest(&rpc.GetRoomRequest{Code: code}))
	if connect.CodeOf(err) == connect.CodeNotFound {
		_, err = c.CreateRoom(ctx, connect.NewRequest(&rpc.CreateRoomRequest{Code: code}))
		// another bot may have created it first
		if connect.CodeOf(err) == connect.CodeAlreadyExists {
			err = nil
		}
	}
	if err != nil {
		return rpc.Room{}, fmt.Errorf("room %s: %w", code, err)
	}

	res, err := c.JoinRoom(ctx, connect.NewRequest(&rpc.JoinRoomRequest{Code: code, ParticipantID: participantID}))
	if err != nil {
		return rpc.Room{}, fmt.Errorf("join room %s: %w", code, err)
	}
	return res.Msg.Room, nil
}

// leaveRoom removes the membership and clears the session identity. The
// identity is cleared even when the server cannot be reached.
func leaveRoom(c rpc.RoomServiceClient, session *syncproto.Context, code, participantID string) error {
	defer session.Leave()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := c.LeaveRoom(ctx, connect.NewRequest(&rpc.LeaveRoomRequest{Code: code, ParticipantID: participantID}))
	if err != nil {
		log.Warn().Err(err).Str("room_code", code).Msg("failed to leave room")
		return fmt.Errorf("leave room: %w", err)
	}
	return nil
}

// pickRestaurant sets the closest nearby shop as the restaurant candidate.
// Failures are reported and otherwise ignored.
func pickRestaurant(ctx context.Context, out io.Writer, c rpc.ParticipantServiceClient, cfg *Config, participantID string) {
	lookup := places.NewClient(cfg.server)
	if area, err := lookup.Area(ctx, cfg.lat, cfg.lng); err == nil && area.Area != "" {
		fmt.Fprintf(out, "area: %s %s\n", area.Area, area.Locality)
	}

	res, err := lookup.Nearby(ctx, places.NearbyQuery{Lat: cfg.lat, Lng: cfg.lng, RadiusM: cfg.radius, Count: 5})
	if err != nil || len(res.Items) == 0 {
		fmt.Fprintf(out, "no restaurant candidate: %v\n", errors.Join(err, errNoShops(res)))
		return
	}
	name := res.Items[0].Name
	if _, err := c.UpdateParticipant(ctx, connect.NewRequest(&rpc.UpdateParticipantRequest{
		ID:                  participantID,
		RestaurantCandidate: &name,
	})); err != nil {
		fmt.Fprintf(out, "could not save restaurant candidate: %v\n", err)
		return
	}
	fmt.Fprintf(out, "restaurant candidate: %s\n", name)
}

func errNoShops(res *places.NearbyResult) error {
	if res != nil && len(res.Items) == 0 {
		return errors.New("no shops found")
	}
	return nil
}

func printLeaderboard(out io.Writer, res syncproto.RoundResult, me uuid.UUID) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tNAME\tSCORE\t\n")
	for i, r := range res.Leaderboard.Entries {
		marker := ""
		if r.ParticipantID == me {
			marker = "<- you"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", res.Leaderboard.Ranks[i], r.ParticipantName, r.Score, marker)
	}
	_ = w.Flush()
}
