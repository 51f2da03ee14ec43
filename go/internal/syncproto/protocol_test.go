package syncproto

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/gateway"
	"github.com/mcdev12/meshiroyale/go/internal/models"
)

func TestNormalize(t *testing.T) {
	room := uuid.MustParse("7f1f3f0e-6a53-4c55-9d5e-1f8d2b8f9a01")
	player := uuid.MustParse("0b5c3a56-1d2e-4f7a-8b9c-0d1e2f3a4b5c")

	tests := []struct {
		name    string
		payload string
		want    ChangeEvent
		wantErr bool
	}{
		{
			name:    "snake case top level",
			payload: fmt.Sprintf(`{"room_id":%q,"participant_id":%q,"game_type":"timing-stop"}`, room, player),
			want:    ChangeEvent{RoomID: room, ParticipantID: player, GameType: models.GameTypeTimingStop},
		},
		{
			name:    "camel case under record",
			payload: fmt.Sprintf(`{"type":"UPDATE","record":{"roomId":%q,"userId":%q,"gameType":"button-mashing"}}`, room, player),
			want:    ChangeEvent{RoomID: room, ParticipantID: player, GameType: models.GameTypeButtonMashing},
		},
		{
			name:    "nested under payload then new",
			payload: fmt.Sprintf(`{"payload":{"new":{"room_id":%q,"game_type":"avoidance-game"}}}`, room),
			want:    ChangeEvent{RoomID: room, GameType: models.GameTypeAvoidance},
		},
		{
			name:    "data wrapper with a bad record ahead",
			payload: fmt.Sprintf(`{"record":"oops","data":{"roomID":%q,"game_type":"color-challenge"}}`, room),
			want:    ChangeEvent{RoomID: room, GameType: models.GameTypeColorChallenge},
		},
		{name: "missing game type", payload: fmt.Sprintf(`{"room_id":%q}`, room), wantErr: true},
		{name: "room is not a uuid", payload: `{"room_id":"AB12CD","game_type":"timing-stop"}`, wantErr: true},
		{name: "not json", payload: `INSERT`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLaunchParams(t *testing.T) {
	user := uuid.New()

	p, err := ParseLaunchParams(url.Values{
		"userId":          {user.String()},
		"roomCode":        {"AB12CD"},
		"joinedUserCount": {"3"},
	})
	require.NoError(t, err)
	assert.Equal(t, LaunchParams{UserID: user, RoomCode: "AB12CD", JoinedUserCount: 3}, p)
	assert.False(t, p.Solo())

	legacy, err := ParseLaunchParams(url.Values{
		"userId":         {user.String()},
		"roomCode":       {"AB12CD"},
		"joindUserCount": {"2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, legacy.JoinedUserCount)

	solo, err := ParseLaunchParams(url.Values{})
	require.NoError(t, err)
	assert.True(t, solo.Solo())

	_, err = ParseLaunchParams(url.Values{"joinedUserCount": {"-1"}})
	assert.Error(t, err)
	_, err = ParseLaunchParams(url.Values{"userId": {"me"}})
	assert.Error(t, err)
}

func TestLaunchParamsURL(t *testing.T) {
	p := LaunchParams{UserID: uuid.New(), RoomCode: "AB12CD", JoinedUserCount: 2}
	u, err := url.Parse(p.URL("/games/timing-stop"))
	require.NoError(t, err)
	assert.Equal(t, "/games/timing-stop", u.Path)

	back, err := ParseLaunchParams(u.Query())
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestContextLifecycle(t *testing.T) {
	c := NewContext()
	_, err := c.Identity()
	require.ErrorIs(t, err, ErrNoIdentity)

	id := testIdentity()
	c.Join(id)
	got, err := c.Identity()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	c.Leave()
	_, err = c.Identity()
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestWebSocketFeedReceivesGatewayFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	go cm.Start(ctx)
	mux := http.NewServeMux()
	gateway.NewWebSocketHandler(cm).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	feed := NewWebSocketFeed(srv.URL)
	ch, err := feed.Subscribe(ctx)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return cm.GetConnectionStats().TotalConnections == 1
	}, 2*time.Second, 10*time.Millisecond)

	room, player := uuid.New(), uuid.New()
	frame, err := gateway.FrameFromEnvelope([]byte(fmt.Sprintf(
		`{"eventId":"e1","eventType":"INSERT","timestamp":"2024-05-01T12:00:00Z","payload":{"room_id":%q,"participant_id":%q,"game_type":"button-mashing","score":40}}`,
		room, player)))
	require.NoError(t, err)
	cm.Broadcast(frame)

	select {
	case data := <-ch:
		ev, err := Normalize(data)
		require.NoError(t, err)
		assert.True(t, ev.Matches(room, models.GameTypeButtonMashing))
		assert.Equal(t, player, ev.ParticipantID)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func fastTuning() game.Tuning {
	tuning := game.DefaultTuning()
	tuning.ButtonMashing.Countdown = 5 * time.Millisecond
	tuning.ButtonMashing.Window = 40 * time.Millisecond
	tuning.TimingStop.Countdown = 5 * time.Millisecond
	tuning.TimingStop.Target = 30 * time.Millisecond
	return tuning
}

func TestCoordinatorPlaysRoomRound(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := newMemStore()
	roomID, rival := uuid.New(), uuid.New()
	store.rooms["AAAAAA"] = roomID
	store.put(roomID, rival, models.GameTypeButtonMashing, 1000)

	cfg := DefaultCoordinatorConfig()
	cfg.Tuning = fastTuning()
	cfg.Frame = 2 * time.Millisecond
	session := NewContext()
	watcher := NewWatcher(store, WithPollInterval(5*time.Millisecond))
	coord := NewCoordinator(session, store, store, watcher, nil, cfg)

	var progress []Snapshot
	coord.OnProgress = func(s Snapshot) { progress = append(progress, s) }

	params := LaunchParams{UserID: uuid.New(), RoomCode: "AAAAAA", JoinedUserCount: 2}
	gameType := GameFor(params, models.GameTypeTimingStop)
	require.Equal(t, models.GameTypeButtonMashing, gameType)

	res, err := coord.Play(ctx, gameType, params, func(sim game.Simulation, _ time.Duration) bool {
		sim.(*game.ButtonMashing).Click()
		return false
	})
	require.NoError(t, err)

	assert.False(t, res.Solo)
	assert.Positive(t, res.Outcome.Score)
	assert.Len(t, res.Results, 2)
	assert.Equal(t, 2, res.Rank)
	require.NotEmpty(t, progress)
	assert.True(t, progress[len(progress)-1].AllDone)

	id, err := session.Identity()
	require.NoError(t, err)
	assert.Equal(t, roomID, id.RoomID)
	submits, _ := store.counts()
	assert.Equal(t, 1, submits)
}

func TestCoordinatorCompletesFromSubmitRefetch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := newMemStore()
	roomID, rival := uuid.New(), uuid.New()
	store.rooms["AAAAAA"] = roomID
	store.put(roomID, rival, models.GameTypeButtonMashing, 3)

	cfg := DefaultCoordinatorConfig()
	cfg.Tuning = fastTuning()
	cfg.Frame = 2 * time.Millisecond
	// no feed, no polling, and a store that never sees the round
	silent := NewWatcher(newMemStore(), WithPollInterval(0))
	coord := NewCoordinator(NewContext(), store, store, silent, nil, cfg)

	params := LaunchParams{UserID: uuid.New(), RoomCode: "AAAAAA", JoinedUserCount: 2}
	res, err := coord.Play(ctx, models.GameTypeButtonMashing, params, func(sim game.Simulation, _ time.Duration) bool {
		sim.(*game.ButtonMashing).Click()
		return false
	})
	require.NoError(t, err)

	assert.Len(t, res.Results, 2)
	rank, ok := res.Leaderboard.RankOf(params.UserID)
	require.True(t, ok)
	assert.Equal(t, res.Rank, rank)
	submits, lists := store.counts()
	assert.Equal(t, 1, submits)
	assert.Equal(t, 1, lists, "only the guard re-reads the round")
}

func TestCoordinatorSoloRound(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := newMemStore()
	cfg := DefaultCoordinatorConfig()
	cfg.Tuning = fastTuning()
	cfg.Frame = 2 * time.Millisecond
	coord := NewCoordinator(NewContext(), store, store, NewWatcher(store), nil, cfg)

	params := LaunchParams{}
	res, err := coord.Play(ctx, GameFor(params, models.GameTypeTimingStop), params,
		func(sim game.Simulation, elapsed time.Duration) bool {
			if elapsed < 20*time.Millisecond {
				return false
			}
			return sim.(*game.TimingStop).Stop()
		})
	require.NoError(t, err)

	assert.True(t, res.Solo)
	assert.Equal(t, models.GameTypeTimingStop, res.Outcome.GameType)
	assert.Zero(t, res.Rank)
	submits, lists := store.counts()
	assert.Zero(t, submits)
	assert.Zero(t, lists)
}

func TestCoordinatorUnknownRoom(t *testing.T) {
	store := newMemStore()
	coord := NewCoordinator(NewContext(), store, store, NewWatcher(store), nil, DefaultCoordinatorConfig())

	_, err := coord.Play(context.Background(), models.GameTypeButtonMashing,
		LaunchParams{UserID: uuid.New(), RoomCode: "ZZZZZZ", JoinedUserCount: 1}, nil)
	assert.Error(t, err)
}
