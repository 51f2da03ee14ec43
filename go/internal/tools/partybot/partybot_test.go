package main

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/meshiroyale/go/internal/game"
	"github.com/mcdev12/meshiroyale/go/internal/rpc"
	"github.com/mcdev12/meshiroyale/go/internal/syncproto"
)

func TestSelectCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"select", "AAAAAA"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/games/button-mashing\n", out.String())
}

func TestPlayFlagsFromEnv(t *testing.T) {
	t.Setenv("PARTYBOT_ROOM", "AB12CD")
	t.Setenv("PARTYBOT_STRATEGY", "perfect")

	cfg := &Config{}
	cmd := newPlayCmd(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--name", "bot"}))

	assert.Equal(t, "AB12CD", cfg.room)
	assert.Equal(t, "perfect", cfg.strategy)
	assert.Equal(t, "bot", cfg.name)
	assert.NoError(t, cfg.validate())
}

func TestConfigValidate(t *testing.T) {
	base := Config{server: "http://localhost:8080", strategy: "human", game: "timing-stop"}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no server", func(c *Config) { c.server = "" }},
		{"unknown strategy", func(c *Config) { c.strategy = "cheater" }},
		{"unknown solo game", func(c *Config) { c.game = "chess" }},
		{"negative expected", func(c *Config) { c.expected = -1 }},
		{"lat without lng", func(c *Config) { c.lat = 35.6 }},
	}
	require.NoError(t, base.validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestPerfectInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	input := newInput(strategies["perfect"], rng)
	tuning := game.DefaultTuning()

	mashing := game.NewButtonMashing(tuning.ButtonMashing)
	for i := 0; i < 5; i++ {
		assert.False(t, input(mashing, time.Duration(i)*time.Millisecond))
	}
	assert.Equal(t, int64(5), mashing.Clicks())

	colors := game.NewColorChallenge(tuning.ColorChallenge, 7)
	colors.Begin(time.Time{})
	for i := 0; i < 10; i++ {
		input(colors, 0)
	}
	assert.Equal(t, int64(10), colors.Score())

	timing := game.NewTimingStop(tuning.TimingStop)
	timing.Begin(time.Time{})
	timing.Advance(9 * time.Second)
	assert.False(t, input(timing, 9*time.Second))
	timing.Advance(10 * time.Second)
	assert.True(t, input(timing, 10*time.Second))
	assert.Equal(t, int64(0), timing.Score())
}

func TestDodgeMovesAwayFromObstacle(t *testing.T) {
	tuning := game.DefaultTuning().Avoidance
	tuning.TopSpawnRatio = 1
	a := game.NewAvoidance(tuning, 3)
	a.Begin(time.Time{})

	// no obstacles yet: centred player stays put
	assert.Zero(t, dodge(a))

	a.MoveTo(40, 400)
	assert.Positive(t, dodge(a), "drifts back to the middle")
}

// leaveRecorder answers LeaveRoom; every other procedure is unused.
type leaveRecorder struct {
	rpc.RoomServiceClient
	requests []*rpc.LeaveRoomRequest
	err      error
}

func (r *leaveRecorder) LeaveRoom(_ context.Context, req *connect.Request[rpc.LeaveRoomRequest]) (*connect.Response[rpc.LeaveRoomResponse], error) {
	r.requests = append(r.requests, req.Msg)
	if r.err != nil {
		return nil, r.err
	}
	return connect.NewResponse(&rpc.LeaveRoomResponse{}), nil
}

func TestLeaveRoomClearsSession(t *testing.T) {
	me := uuid.New()
	joined := syncproto.Identity{ParticipantID: me, RoomID: uuid.New(), RoomCode: "AB12CD"}

	t.Run("server accepts", func(t *testing.T) {
		session := syncproto.NewContext()
		session.Join(joined)
		rooms := &leaveRecorder{}

		require.NoError(t, leaveRoom(rooms, session, "AB12CD", me.String()))
		require.Len(t, rooms.requests, 1)
		assert.Equal(t, "AB12CD", rooms.requests[0].Code)
		assert.Equal(t, me.String(), rooms.requests[0].ParticipantID)
		_, err := session.Identity()
		assert.ErrorIs(t, err, syncproto.ErrNoIdentity)
	})

	t.Run("server unreachable", func(t *testing.T) {
		session := syncproto.NewContext()
		session.Join(joined)
		rooms := &leaveRecorder{err: connect.NewError(connect.CodeUnavailable, errors.New("down"))}

		assert.Error(t, leaveRoom(rooms, session, "AB12CD", me.String()))
		_, err := session.Identity()
		assert.ErrorIs(t, err, syncproto.ErrNoIdentity)
	})
}
