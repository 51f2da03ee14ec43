package game

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// Obstacle is an axis-aligned rectangle moving at a constant velocity.
type Obstacle struct {
	X, Y, W, H float64
	VX, VY     float64
}

// Avoidance moves a round player through falling obstacles. Spawn interval
// and obstacle speed interpolate from their start to end values as the
// round progresses.
type Avoidance struct {
	cfg AvoidanceTuning
	rng *rand.Rand

	playerX, playerY float64
	dirX, dirY       float64

	obstacles []Obstacle
	last      time.Duration
	nextSpawn time.Duration

	survived time.Duration
	cleared  bool
}

func NewAvoidance(cfg AvoidanceTuning, seed uint64) *Avoidance {
	return &Avoidance{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x2545f4914f6cdd1d)),
	}
}

func (a *Avoidance) Descriptor() Descriptor {
	return Descriptor{
		Type:      models.GameTypeAvoidance,
		Order:     models.ScoreOrderDesc,
		Countdown: a.cfg.Countdown,
		Duration:  a.cfg.Round,
	}
}

func (a *Avoidance) Begin(time.Time) {
	a.playerX = a.cfg.Width / 2
	a.playerY = a.cfg.Height * 0.8
	a.dirX, a.dirY = 0, 0
	a.obstacles = a.obstacles[:0]
	a.last = 0
	a.nextSpawn = 0
	a.survived = 0
	a.cleared = false
}

// SetDirection sets the keyboard direction. Components are clamped to [-1, 1]
// and diagonals are normalised.
func (a *Avoidance) SetDirection(dx, dy float64) {
	dx, dy = clamp(dx, -1, 1), clamp(dy, -1, 1)
	if n := math.Hypot(dx, dy); n > 1 {
		dx, dy = dx/n, dy/n
	}
	a.dirX, a.dirY = dx, dy
}

// MoveTo places the player directly, as when dragging.
func (a *Avoidance) MoveTo(x, y float64) {
	r := a.cfg.PlayerRadius
	a.playerX = clamp(x, r, a.cfg.Width-r)
	a.playerY = clamp(y, r, a.cfg.Height-r)
}

// Player returns the player centre.
func (a *Avoidance) Player() (x, y float64) {
	return a.playerX, a.playerY
}

// Obstacles returns a copy of the live obstacles.
func (a *Avoidance) Obstacles() []Obstacle {
	return append([]Obstacle(nil), a.obstacles...)
}

func (a *Avoidance) Advance(elapsed time.Duration) bool {
	if elapsed > a.cfg.Round {
		elapsed = a.cfg.Round
	}
	dt := (elapsed - a.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	a.last = elapsed

	r := a.cfg.PlayerRadius
	a.playerX = clamp(a.playerX+a.dirX*a.cfg.PlayerSpeed*dt, r, a.cfg.Width-r)
	a.playerY = clamp(a.playerY+a.dirY*a.cfg.PlayerSpeed*dt, r, a.cfg.Height-r)

	live := a.obstacles[:0]
	for _, o := range a.obstacles {
		o.X += o.VX * dt
		o.Y += o.VY * dt
		if !a.offscreen(o) {
			live = append(live, o)
		}
	}
	a.obstacles = live

	progress := a.progress(elapsed)
	for elapsed >= a.nextSpawn {
		a.spawn(progress)
		interval := lerpDuration(a.cfg.SpawnStart, a.cfg.SpawnEnd, progress)
		if interval <= 0 {
			interval = time.Millisecond
		}
		a.nextSpawn += interval
	}

	// collision wins over a simultaneous round end
	for _, o := range a.obstacles {
		if circleHitsRect(a.playerX, a.playerY, r, o) {
			a.survived = elapsed
			return false
		}
	}

	if elapsed >= a.cfg.Round {
		a.survived = a.cfg.Round
		a.cleared = true
		return false
	}
	return true
}

// Cleared reports whether the player survived the full round.
func (a *Avoidance) Cleared() bool {
	return a.cleared
}

// Score is the survival time in milliseconds.
func (a *Avoidance) Score() int64 {
	return a.survived.Milliseconds()
}

func (a *Avoidance) Details() map[string]any {
	return map[string]any{
		"cleared":     a.cleared,
		"survived_ms": a.survived.Milliseconds(),
	}
}

func (a *Avoidance) progress(elapsed time.Duration) float64 {
	if a.cfg.Round <= 0 {
		return 1
	}
	return clamp(float64(elapsed)/float64(a.cfg.Round), 0, 1)
}

func (a *Avoidance) spawn(progress float64) {
	speed := lerp(a.cfg.SpeedStart, a.cfg.SpeedEnd, progress)
	w := a.cfg.ObstacleMinW + a.rng.Float64()*(a.cfg.ObstacleMaxW-a.cfg.ObstacleMinW)
	h := a.cfg.ObstacleMinH + a.rng.Float64()*(a.cfg.ObstacleMaxH-a.cfg.ObstacleMinH)

	if a.rng.Float64() < a.cfg.TopSpawnRatio {
		a.obstacles = append(a.obstacles, Obstacle{
			X:  a.rng.Float64() * math.Max(0, a.cfg.Width-w),
			Y:  -h,
			W:  w,
			H:  h,
			VY: speed,
		})
		return
	}

	// side obstacles travel horizontally, so the rectangle is rotated
	w, h = h, w
	side := speed * a.cfg.SideSpeedFactor
	o := Obstacle{
		Y: a.rng.Float64() * math.Max(0, a.cfg.Height-h),
		W: w,
		H: h,
	}
	if a.rng.IntN(2) == 0 {
		o.X, o.VX = -w, side
	} else {
		o.X, o.VX = a.cfg.Width, -side
	}
	a.obstacles = append(a.obstacles, o)
}

func (a *Avoidance) offscreen(o Obstacle) bool {
	switch {
	case o.Y > a.cfg.Height:
		return true
	case o.VX > 0 && o.X > a.cfg.Width:
		return true
	case o.VX < 0 && o.X+o.W < 0:
		return true
	}
	return false
}

// circleHitsRect reports whether the closest point of o to (cx, cy) lies
// within radius r.
func circleHitsRect(cx, cy, r float64, o Obstacle) bool {
	nx := clamp(cx, o.X, o.X+o.W)
	ny := clamp(cy, o.Y, o.Y+o.H)
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy <= r*r
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpDuration(a, b time.Duration, t float64) time.Duration {
	return time.Duration(lerp(float64(a), float64(b), t))
}
