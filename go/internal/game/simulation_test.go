package game

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

func TestVisibleUntil(t *testing.T) {
	tests := []struct {
		target time.Duration
		want   time.Duration
	}{
		{10 * time.Second, 3 * time.Second},
		{7 * time.Second, 3 * time.Second},
		{1 * time.Second, 1 * time.Second},
		{0, 1 * time.Second},
		{3500 * time.Millisecond, 2 * time.Second},
		{20 * time.Second, 6 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VisibleUntil(tt.target), "target %s", tt.target)
	}
}

func TestTimingStopVerdicts(t *testing.T) {
	cfg := TimingStopTuning{Target: 10 * time.Second}

	stopAt := func(d time.Duration) *TimingStop {
		ts := NewTimingStop(cfg)
		ts.Begin(time.Time{})
		ts.Advance(d)
		require.True(t, ts.Stop())
		require.False(t, ts.Stop())
		return ts
	}

	early := stopAt(9800 * time.Millisecond)
	assert.Equal(t, VerdictEarly, early.Verdict())
	assert.Equal(t, int64(200), early.Score())

	exact := stopAt(10 * time.Second)
	assert.Equal(t, VerdictExact, exact.Verdict())
	assert.Equal(t, int64(0), exact.Score())

	late := stopAt(10450 * time.Millisecond)
	assert.Equal(t, VerdictLate, late.Verdict())
	assert.Equal(t, int64(450), late.Score())
}

func TestColorChallengeScoring(t *testing.T) {
	cc := NewColorChallenge(DefaultTuning().ColorChallenge, 42)
	cc.Begin(time.Time{})

	p := cc.Current()
	assert.True(t, cc.Answer(p.Answer()))

	p = cc.Current()
	wrong := ColorRed
	if p.Answer() == ColorRed {
		wrong = ColorBlue
	}
	assert.False(t, cc.Answer(wrong))

	assert.Equal(t, int64(1), cc.Score())
	assert.Equal(t, int64(2), cc.TotalProblems())
	assert.Equal(t, map[string]any{"total_problems": int64(2)}, cc.Details())

	assert.True(t, cc.Advance(19999*time.Millisecond))
	assert.False(t, cc.Advance(20*time.Second))
}

func TestColorChallengeProblemAnswer(t *testing.T) {
	assert.Equal(t, ColorBlue, Problem{Word: ColorRed, Ink: ColorBlue, Ask: AskInk}.Answer())
	assert.Equal(t, ColorRed, Problem{Word: ColorRed, Ink: ColorBlue, Ask: AskWord}.Answer())
}

func TestColorChallengeDeterministicSeed(t *testing.T) {
	a := NewColorChallenge(DefaultTuning().ColorChallenge, 99)
	b := NewColorChallenge(DefaultTuning().ColorChallenge, 99)
	a.Begin(time.Time{})
	b.Begin(time.Time{})

	for i := 0; i < 20; i++ {
		require.Equal(t, a.Current(), b.Current())
		a.Answer(ColorRed)
		b.Answer(ColorRed)
	}
}

func TestCircleHitsRect(t *testing.T) {
	rect := Obstacle{X: 100, Y: 100, W: 40, H: 20}

	tests := []struct {
		name   string
		cx, cy float64
		want   bool
	}{
		{"inside", 120, 110, true},
		{"touching left edge", 86, 110, true},
		{"just outside left edge", 85.9, 110, false},
		{"corner within radius", 91, 91, true},
		{"corner outside radius", 90, 90, false},
		{"below within radius", 120, 133, true},
		{"below outside radius", 120, 134.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, circleHitsRect(tt.cx, tt.cy, 14, rect))
		})
	}
}

func quietAvoidance() AvoidanceTuning {
	cfg := DefaultTuning().Avoidance
	cfg.Round = 2 * time.Second
	// the single spawn at t=0 falls from above the arena at 1px/s and
	// never reaches the player within the round
	cfg.SpawnStart = time.Hour
	cfg.SpawnEnd = time.Hour
	cfg.SpeedStart = 1
	cfg.SpeedEnd = 1
	cfg.TopSpawnRatio = 1
	return cfg
}

func TestAvoidanceClearsRound(t *testing.T) {
	av := NewAvoidance(quietAvoidance(), 1)
	av.Begin(time.Time{})

	for e := time.Duration(0); e < 2*time.Second; e += 16 * time.Millisecond {
		require.True(t, av.Advance(e))
	}
	assert.False(t, av.Advance(2500*time.Millisecond))
	assert.True(t, av.Cleared())
	assert.Equal(t, int64(2000), av.Score())
	assert.Equal(t, true, av.Details()["cleared"])
}

func TestAvoidanceCollisionEndsRound(t *testing.T) {
	av := NewAvoidance(quietAvoidance(), 1)
	av.Begin(time.Time{})
	require.True(t, av.Advance(100*time.Millisecond))

	px, py := av.Player()
	av.obstacles = append(av.obstacles, Obstacle{X: px - 5, Y: py - 5, W: 10, H: 10})

	assert.False(t, av.Advance(1234*time.Millisecond))
	assert.False(t, av.Cleared())
	assert.Equal(t, int64(1234), av.Score())
}

func TestAvoidanceCollisionBeatsRoundEnd(t *testing.T) {
	av := NewAvoidance(quietAvoidance(), 1)
	av.Begin(time.Time{})
	require.True(t, av.Advance(0))

	px, py := av.Player()
	av.obstacles = append(av.obstacles, Obstacle{X: px - 5, Y: py - 5, W: 10, H: 10})

	assert.False(t, av.Advance(2*time.Second))
	assert.False(t, av.Cleared())
	assert.Equal(t, int64(2000), av.Score())
}

func TestAvoidanceCullsOffscreen(t *testing.T) {
	av := NewAvoidance(quietAvoidance(), 1)
	av.Begin(time.Time{})
	require.True(t, av.Advance(0))

	av.obstacles = []Obstacle{
		{X: 0, Y: 539, W: 10, H: 10, VY: 100},
		{X: 355, Y: 0, W: 10, H: 10, VX: 100},
		{X: -5, Y: 0, W: 10, H: 10, VX: -100},
	}
	require.True(t, av.Advance(100*time.Millisecond))
	assert.Empty(t, av.Obstacles())
}

func TestAvoidanceDifficultyRamps(t *testing.T) {
	cfg := DefaultTuning().Avoidance

	assert.Equal(t, 700*time.Millisecond, lerpDuration(cfg.SpawnStart, cfg.SpawnEnd, 0))
	assert.Equal(t, 475*time.Millisecond, lerpDuration(cfg.SpawnStart, cfg.SpawnEnd, 0.5))
	assert.Equal(t, 250*time.Millisecond, lerpDuration(cfg.SpawnStart, cfg.SpawnEnd, 1))
	assert.InDelta(t, 270, lerp(cfg.SpeedStart, cfg.SpeedEnd, 0.5), 1e-9)
}

func TestAvoidanceSpawnShapes(t *testing.T) {
	cfg := DefaultTuning().Avoidance
	av := NewAvoidance(cfg, 5)
	av.Begin(time.Time{})

	for i := 0; i < 500; i++ {
		av.spawn(0)
	}
	var top, side int
	for _, o := range av.obstacles {
		if o.VY > 0 {
			top++
			assert.InDelta(t, 180, o.VY, 1e-9)
			assert.GreaterOrEqual(t, o.W, cfg.ObstacleMinW)
			assert.LessOrEqual(t, o.W, cfg.ObstacleMaxW)
			continue
		}
		side++
		assert.InDelta(t, 144, absf(o.VX), 1e-9)
		// rotated: width is drawn from the height range
		assert.GreaterOrEqual(t, o.W, cfg.ObstacleMinH)
		assert.LessOrEqual(t, o.W, cfg.ObstacleMaxH)
	}
	assert.Greater(t, top, side*3)
	assert.Positive(t, side)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestNewSimulation(t *testing.T) {
	for _, gt := range models.GameTypes {
		sim, err := NewSimulation(gt, DefaultTuning(), 1)
		require.NoError(t, err)
		assert.Equal(t, gt, sim.Descriptor().Type)
		assert.Equal(t, gt.Order(), sim.Descriptor().Order)
	}

	_, err := NewSimulation("bingo", DefaultTuning(), 1)
	assert.Error(t, err)
}

func TestLoadTuning(t *testing.T) {
	tuning, err := LoadTuning(strings.NewReader(`
timing_stop:
  target: 7s
button_mashing:
  window: 5s
`))
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, tuning.TimingStop.Target)
	assert.Equal(t, 3*time.Second, tuning.TimingStop.Countdown)
	assert.Equal(t, 5*time.Second, tuning.ButtonMashing.Window)
	assert.Equal(t, 30*time.Second, tuning.Avoidance.Round)

	empty, err := LoadTuning(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), empty)
}

func TestAvoidancePlayerMovement(t *testing.T) {
	av := NewAvoidance(quietAvoidance(), 1)
	av.Begin(time.Time{})
	require.True(t, av.Advance(0))

	av.SetDirection(1, 0)
	require.True(t, av.Advance(500*time.Millisecond))
	x, y := av.Player()
	assert.InDelta(t, 340, x, 1e-9)
	assert.InDelta(t, 432, y, 1e-9)

	require.True(t, av.Advance(time.Second))
	x, _ = av.Player()
	assert.InDelta(t, 346, x, 1e-9, "clamped to the arena")

	av.MoveTo(-50, 1000)
	x, y = av.Player()
	assert.InDelta(t, 14, x, 1e-9)
	assert.InDelta(t, 526, y, 1e-9)
}
