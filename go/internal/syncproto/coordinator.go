package syncproto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// Input is called every frame while a round is running. It mutates the
// simulation and returns true to end the round.
type Input func(sim game.Simulation, elapsed time.Duration) bool

// RoundResult is what a player sees after a round.
type RoundResult struct {
	Outcome     game.Outcome
	Solo        bool
	Results     []models.GameResult
	Leaderboard game.Leaderboard
	// Rank is zero for solo rounds.
	Rank int
}

type CoordinatorConfig struct {
	Tuning game.Tuning
	// Frame is the period of the update loop.
	Frame time.Duration
	// RetryEvery is how often a failed submission is attempted again while
	// waiting for the other participants.
	RetryEvery time.Duration
	Seed       uint64
}

func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		Tuning:     game.DefaultTuning(),
		Frame:      16 * time.Millisecond,
		RetryEvery: time.Second,
	}
}

// Coordinator plays one round end to end: session, submission, completion
// wait and leaderboard.
type Coordinator struct {
	session *Context
	rooms   RoomResolver
	store   ResultStore
	watcher *Watcher
	clock   clockwork.Clock
	config  CoordinatorConfig

	// OnProgress, when set, receives every watcher snapshot.
	OnProgress func(Snapshot)
}

func NewCoordinator(session *Context, rooms RoomResolver, store ResultStore, watcher *Watcher, clock clockwork.Clock, config CoordinatorConfig) *Coordinator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if config.Frame <= 0 {
		config.Frame = DefaultCoordinatorConfig().Frame
	}
	if config.RetryEvery <= 0 {
		config.RetryEvery = DefaultCoordinatorConfig().RetryEvery
	}
	return &Coordinator{
		session: session,
		rooms:   rooms,
		store:   store,
		watcher: watcher,
		clock:   clock,
		config:  config,
	}
}

// GameFor returns the game a launch plays. Solo launches have no room code
// and must name their game.
func GameFor(params LaunchParams, solo models.GameType) models.GameType {
	if params.RoomCode == "" {
		return solo
	}
	return game.SelectGame(params.RoomCode)
}

// Play runs gameType with the given input until the round ends, then waits
// until every expected participant has a result. Solo launches return as
// soon as the round ends.
func (c *Coordinator) Play(ctx context.Context, gameType models.GameType, params LaunchParams, input Input) (RoundResult, error) {
	identity, err := c.identity(ctx, params)
	if err != nil {
		return RoundResult{}, err
	}

	sim, err := game.NewSimulation(gameType, c.config.Tuning, c.config.Seed)
	if err != nil {
		return RoundResult{}, err
	}
	session := game.NewSession(sim, c.clock)
	guard := NewSubmissionGuard(c.store, identity)
	refetched := make(chan []models.GameResult, 1)
	guard.OnResults(func(list []models.GameResult) {
		select {
		case refetched <- list:
		default:
		}
	})
	session.OnResult(func(out game.Outcome) {
		guard.Submit(ctx, out)
	})

	out, err := c.runSession(ctx, session, input)
	if err != nil {
		return RoundResult{}, err
	}
	if identity.Solo() {
		return RoundResult{Outcome: out, Solo: true}, nil
	}

	snap, err := c.waitForAll(ctx, guard, refetched, out, identity, gameType, params.JoinedUserCount)
	if err != nil {
		return RoundResult{Outcome: out}, err
	}
	board := game.BuildLeaderboard(snap.Results, gameType.Order())
	rank, _ := board.RankOf(identity.ParticipantID)
	return RoundResult{
		Outcome:     out,
		Results:     snap.Results,
		Leaderboard: board,
		Rank:        rank,
	}, nil
}

func (c *Coordinator) identity(ctx context.Context, params LaunchParams) (Identity, error) {
	if params.Solo() {
		return Identity{}, nil
	}
	if id, err := c.session.Identity(); err == nil && id.RoomCode == params.RoomCode && id.ParticipantID == params.UserID {
		return id, nil
	} else if err != nil && !errors.Is(err, ErrNoIdentity) {
		return Identity{}, err
	}

	roomID, err := c.rooms.ResolveRoom(ctx, params.RoomCode)
	if err != nil {
		return Identity{}, fmt.Errorf("resolve room: %w", err)
	}
	id := Identity{ParticipantID: params.UserID, RoomID: roomID, RoomCode: params.RoomCode}
	c.session.Join(id)
	return id, nil
}

func (c *Coordinator) runSession(ctx context.Context, session *game.Session[game.Simulation], input Input) (game.Outcome, error) {
	if err := session.Start(); err != nil {
		return game.Outcome{}, err
	}
	ticker := c.clock.NewTicker(c.config.Frame)
	defer ticker.Stop()

	for {
		state := session.Tick()
		if state == game.StateResult {
			out, _ := session.Outcome()
			return out, nil
		}
		if state == game.StateRunning && input != nil {
			elapsed := session.Elapsed()
			err := session.Apply(func(sim game.Simulation) bool {
				return input(sim, elapsed)
			})
			if err != nil && !errors.Is(err, game.ErrNotRunning) {
				return game.Outcome{}, err
			}
		}
		select {
		case <-ctx.Done():
			return game.Outcome{}, ctx.Err()
		case <-ticker.Chan():
		}
	}
}

// waitForAll merges watcher snapshots with the list the guard re-reads after
// a successful submit, whichever reports completion first.
func (c *Coordinator) waitForAll(ctx context.Context, guard *SubmissionGuard, refetched <-chan []models.GameResult, out game.Outcome, identity Identity, gameType models.GameType, expected int) (Snapshot, error) {
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	snaps := c.watcher.Watch(watchCtx, identity.RoomID, gameType, expected)
	retry := c.clock.NewTicker(c.config.RetryEvery)
	defer retry.Stop()

	var last Snapshot
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case snap, ok := <-snaps:
			if !ok {
				if last.AllDone {
					return last, nil
				}
				return last, ctx.Err()
			}
			last = snap
			if c.OnProgress != nil {
				c.OnProgress(snap)
			}
			if snap.AllDone {
				return snap, nil
			}
		case list := <-refetched:
			snap := newSnapshot(list, expected)
			if snap.Received > last.Received || snap.AllDone {
				last = snap
				if c.OnProgress != nil {
					c.OnProgress(snap)
				}
			}
			if snap.AllDone {
				return snap, nil
			}
		case <-retry.Chan():
			if guard.Submit(ctx, out) {
				log.Info().
					Str("room_id", identity.RoomID.String()).
					Str("game_type", string(gameType)).
					Msg("retrying result submission")
			}
		}
	}
}
