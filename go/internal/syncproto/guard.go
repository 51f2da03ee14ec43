package syncproto

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// GuardState is the lifecycle of a SubmissionGuard.
type GuardState int32

const (
	GuardIdle GuardState = iota
	GuardPending
	GuardDone
)

func (s GuardState) String() string {
	switch s {
	case GuardIdle:
		return "idle"
	case GuardPending:
		return "pending"
	case GuardDone:
		return "done"
	default:
		return "unknown"
	}
}

// SubmissionGuard sends a round's outcome to the store at most once at a time
// and exactly once on success. The latch is taken before the network call
// starts; a failed call releases it so a later Submit can retry.
type SubmissionGuard struct {
	store    ResultStore
	identity Identity

	state atomic.Int32

	mu        sync.Mutex
	onResults []func([]models.GameResult)
	wg        sync.WaitGroup
}

func NewSubmissionGuard(store ResultStore, identity Identity) *SubmissionGuard {
	return &SubmissionGuard{store: store, identity: identity}
}

// OnResults registers fn to receive the room's result list re-fetched right
// after a successful submission.
func (g *SubmissionGuard) OnResults(fn func([]models.GameResult)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onResults = append(g.onResults, fn)
}

func (g *SubmissionGuard) State() GuardState {
	return GuardState(g.state.Load())
}

// Submit launches the submission of out in the background and reports
// whether it did. Nothing is launched for a solo identity, while another
// submission is pending, or after one has succeeded.
func (g *SubmissionGuard) Submit(ctx context.Context, out game.Outcome) bool {
	if g.identity.Solo() {
		return false
	}
	if !g.state.CompareAndSwap(int32(GuardIdle), int32(GuardPending)) {
		return false
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.submit(ctx, out)
	}()
	return true
}

// Wait blocks until every launched submission has returned.
func (g *SubmissionGuard) Wait() {
	g.wg.Wait()
}

func (g *SubmissionGuard) submit(ctx context.Context, out game.Outcome) {
	sub := Submission{
		RoomID:        g.identity.RoomID,
		ParticipantID: g.identity.ParticipantID,
		GameType:      out.GameType,
		Score:         out.Score,
	}
	if len(out.Details) > 0 {
		details, err := json.Marshal(out.Details)
		if err != nil {
			log.Error().Err(err).Str("game_type", string(out.GameType)).Msg("failed to encode result details")
		} else {
			sub.Details = details
		}
	}

	if _, err := g.store.Submit(ctx, sub); err != nil {
		g.state.Store(int32(GuardIdle))
		log.Error().
			Err(err).
			Str("room_id", sub.RoomID.String()).
			Str("participant_id", sub.ParticipantID.String()).
			Str("game_type", string(sub.GameType)).
			Msg("result submission failed, will retry on next submit")
		return
	}
	g.state.Store(int32(GuardDone))

	list, err := g.store.List(ctx, sub.RoomID, sub.GameType)
	if err != nil {
		log.Warn().Err(err).Str("room_id", sub.RoomID.String()).Msg("failed to refresh results after submit")
		return
	}
	g.mu.Lock()
	hooks := slices.Clone(g.onResults)
	g.mu.Unlock()
	for _, fn := range hooks {
		fn(list)
	}
}
