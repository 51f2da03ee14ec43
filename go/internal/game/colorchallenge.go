package game

import (
	"math/rand/v2"
	"time"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// Color is one of the stimulus colours.
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
)

// Colors lists the palette in display order.
var Colors = []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow}

// Ask selects which attribute of the problem the player must answer.
type Ask string

const (
	AskInk  Ask = "ink"
	AskWord Ask = "word"
)

// Problem shows Word painted in Ink and asks for one of them.
type Problem struct {
	Word Color `json:"word"`
	Ink  Color `json:"ink"`
	Ask  Ask   `json:"ask"`
}

// Answer returns the correct response.
func (p Problem) Answer() Color {
	if p.Ask == AskWord {
		return p.Word
	}
	return p.Ink
}

// ColorChallenge is a Stroop-style quiz over a fixed window.
type ColorChallenge struct {
	cfg     ColorChallengeTuning
	rng     *rand.Rand
	current Problem
	score   int64
	total   int64
}

func NewColorChallenge(cfg ColorChallengeTuning, seed uint64) *ColorChallenge {
	return &ColorChallenge{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (c *ColorChallenge) Descriptor() Descriptor {
	return Descriptor{
		Type:      models.GameTypeColorChallenge,
		Order:     models.ScoreOrderDesc,
		Countdown: c.cfg.Countdown,
		Duration:  c.cfg.Window,
	}
}

func (c *ColorChallenge) Begin(time.Time) {
	c.score, c.total = 0, 0
	c.current = c.nextProblem()
}

func (c *ColorChallenge) Advance(elapsed time.Duration) bool {
	return elapsed < c.cfg.Window
}

// Current returns the problem on screen.
func (c *ColorChallenge) Current() Problem {
	return c.current
}

// Answer grades a response and immediately moves to a new problem.
func (c *ColorChallenge) Answer(choice Color) bool {
	correct := choice == c.current.Answer()
	c.total++
	if correct {
		c.score++
	}
	c.current = c.nextProblem()
	return correct
}

// TotalProblems returns how many problems were answered.
func (c *ColorChallenge) TotalProblems() int64 {
	return c.total
}

func (c *ColorChallenge) Score() int64 {
	return c.score
}

func (c *ColorChallenge) Details() map[string]any {
	return map[string]any{"total_problems": c.total}
}

func (c *ColorChallenge) nextProblem() Problem {
	ask := AskInk
	if c.rng.IntN(2) == 1 {
		ask = AskWord
	}
	return Problem{
		Word: Colors[c.rng.IntN(len(Colors))],
		Ink:  Colors[c.rng.IntN(len(Colors))],
		Ask:  ask,
	}
}
