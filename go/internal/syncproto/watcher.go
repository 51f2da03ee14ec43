package syncproto

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// DefaultPollInterval is the fallback poll period used alongside the feed.
const DefaultPollInterval = 2 * time.Second

// Snapshot is the result set of a round as last read from the store.
type Snapshot struct {
	Results  []models.GameResult
	Received int
	Expected int
	AllDone  bool
}

// Watcher decides when every expected participant of a round has reported.
// Every relevant change and every poll tick re-reads the full result list;
// the change payload itself is only used to filter by room and game.
type Watcher struct {
	store        ResultStore
	feed         ChangeFeed
	clock        clockwork.Clock
	pollInterval time.Duration
}

type WatcherOption func(*Watcher)

// WithFeed enables push notifications. Without a feed the watcher polls.
func WithFeed(feed ChangeFeed) WatcherOption {
	return func(w *Watcher) { w.feed = feed }
}

func WithClock(clock clockwork.Clock) WatcherOption {
	return func(w *Watcher) { w.clock = clock }
}

// WithPollInterval sets the fallback poll period. Zero disables polling.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.pollInterval = d }
}

func NewWatcher(store ResultStore, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		store:        store,
		clock:        clockwork.NewRealClock(),
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch emits a snapshot after the initial fetch and whenever the result set
// changes. The final snapshot has AllDone set and the channel is closed after
// it. When fewer results than expected ever arrive the watch lasts until ctx
// is done.
func (w *Watcher) Watch(ctx context.Context, roomID uuid.UUID, gameType models.GameType, expected int) <-chan Snapshot {
	out := make(chan Snapshot)
	go w.run(ctx, roomID, gameType, expected, out)
	return out
}

func (w *Watcher) run(ctx context.Context, roomID uuid.UUID, gameType models.GameType, expected int, out chan<- Snapshot) {
	defer close(out)
	// the feed subscription ends with the watch, not with the caller's ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := log.With().
		Str("room_id", roomID.String()).
		Str("game_type", string(gameType)).
		Int("expected", expected).
		Logger()

	var events <-chan []byte
	if w.feed != nil {
		ch, err := w.feed.Subscribe(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("change feed unavailable, polling only")
		} else {
			events = ch
		}
	}

	var tick <-chan time.Time
	if w.pollInterval > 0 {
		ticker := w.clock.NewTicker(w.pollInterval)
		defer ticker.Stop()
		tick = ticker.Chan()
	}

	var (
		last    string
		emitted bool
	)
	// refresh reports whether watching should stop.
	refresh := func() bool {
		list, err := w.store.List(ctx, roomID, gameType)
		if err != nil {
			if ctx.Err() != nil {
				return true
			}
			logger.Warn().Err(err).Msg("failed to fetch results")
			return false
		}
		fp := fingerprint(list)
		if emitted && fp == last {
			return false
		}
		snap := newSnapshot(list, expected)
		select {
		case out <- snap:
		case <-ctx.Done():
			return true
		}
		last, emitted = fp, true
		if snap.AllDone {
			logger.Info().Int("received", snap.Received).Msg("all participants finished")
		}
		return snap.AllDone
	}

	if refresh() {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-events:
			if !ok {
				logger.Warn().Msg("change feed ended, polling only")
				events = nil
				continue
			}
			ev, err := Normalize(data)
			if err != nil {
				logger.Debug().Err(err).Msg("ignoring change event")
				continue
			}
			if !ev.Matches(roomID, gameType) {
				continue
			}
			if refresh() {
				return
			}
		case <-tick:
			if refresh() {
				return
			}
		}
	}
}

func newSnapshot(list []models.GameResult, expected int) Snapshot {
	seen := make(map[uuid.UUID]struct{}, len(list))
	for _, r := range list {
		seen[r.ParticipantID] = struct{}{}
	}
	return Snapshot{
		Results:  list,
		Received: len(seen),
		Expected: expected,
		AllDone:  len(seen) >= expected,
	}
}

// fingerprint identifies a result set independent of its order.
func fingerprint(list []models.GameResult) string {
	parts := make([]string, 0, len(list))
	for _, r := range list {
		parts = append(parts, r.ParticipantID.String()+"="+strconv.FormatInt(r.Score, 10))
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}
