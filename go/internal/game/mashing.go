package game

import (
	"time"

	"github.com/mcdev12/meshiroyale/go/internal/models"
)

// ButtonMashing counts clicks inside a fixed window.
type ButtonMashing struct {
	cfg    ButtonMashingTuning
	clicks int64
}

func NewButtonMashing(cfg ButtonMashingTuning) *ButtonMashing {
	return &ButtonMashing{cfg: cfg}
}

func (b *ButtonMashing) Descriptor() Descriptor {
	return Descriptor{
		Type:      models.GameTypeButtonMashing,
		Order:     models.ScoreOrderDesc,
		Countdown: b.cfg.Countdown,
		Duration:  b.cfg.Window,
	}
}

func (b *ButtonMashing) Begin(time.Time) {
	b.clicks = 0
}

func (b *ButtonMashing) Advance(elapsed time.Duration) bool {
	return elapsed < b.cfg.Window
}

// Click registers one press.
func (b *ButtonMashing) Click() {
	b.clicks++
}

// Clicks returns the presses counted so far.
func (b *ButtonMashing) Clicks() int64 {
	return b.clicks
}

func (b *ButtonMashing) Score() int64 {
	return b.clicks
}

func (b *ButtonMashing) Details() map[string]any {
	return nil
}
