package game

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds the per-game constants. Zero-valued fields in a YAML file
// keep their defaults.
type Tuning struct {
	Avoidance      AvoidanceTuning      `yaml:"avoidance"`
	ButtonMashing  ButtonMashingTuning  `yaml:"button_mashing"`
	ColorChallenge ColorChallengeTuning `yaml:"color_challenge"`
	TimingStop     TimingStopTuning     `yaml:"timing_stop"`
}

type AvoidanceTuning struct {
	Countdown       time.Duration `yaml:"countdown"`
	Round           time.Duration `yaml:"round"`
	Width           float64       `yaml:"width"`
	Height          float64       `yaml:"height"`
	PlayerRadius    float64       `yaml:"player_radius"`
	PlayerSpeed     float64       `yaml:"player_speed"`
	SpawnStart      time.Duration `yaml:"spawn_start"`
	SpawnEnd        time.Duration `yaml:"spawn_end"`
	SpeedStart      float64       `yaml:"speed_start"`
	SpeedEnd        float64       `yaml:"speed_end"`
	ObstacleMinW    float64       `yaml:"obstacle_min_w"`
	ObstacleMaxW    float64       `yaml:"obstacle_max_w"`
	ObstacleMinH    float64       `yaml:"obstacle_min_h"`
	ObstacleMaxH    float64       `yaml:"obstacle_max_h"`
	TopSpawnRatio   float64       `yaml:"top_spawn_ratio"`
	SideSpeedFactor float64       `yaml:"side_speed_factor"`
}

type ButtonMashingTuning struct {
	Countdown time.Duration `yaml:"countdown"`
	Window    time.Duration `yaml:"window"`
}

type ColorChallengeTuning struct {
	Countdown time.Duration `yaml:"countdown"`
	Window    time.Duration `yaml:"window"`
}

type TimingStopTuning struct {
	Countdown time.Duration `yaml:"countdown"`
	Target    time.Duration `yaml:"target"`
}

// DefaultTuning returns the production constants.
func DefaultTuning() Tuning {
	return Tuning{
		Avoidance: AvoidanceTuning{
			Countdown:       3 * time.Second,
			Round:           30 * time.Second,
			Width:           360,
			Height:          540,
			PlayerRadius:    14,
			PlayerSpeed:     320,
			SpawnStart:      700 * time.Millisecond,
			SpawnEnd:        250 * time.Millisecond,
			SpeedStart:      180,
			SpeedEnd:        360,
			ObstacleMinW:    24,
			ObstacleMaxW:    56,
			ObstacleMinH:    16,
			ObstacleMaxH:    44,
			TopSpawnRatio:   0.85,
			SideSpeedFactor: 0.8,
		},
		ButtonMashing: ButtonMashingTuning{
			Countdown: 3 * time.Second,
			Window:    10 * time.Second,
		},
		ColorChallenge: ColorChallengeTuning{
			Countdown: 3 * time.Second,
			Window:    20 * time.Second,
		},
		TimingStop: TimingStopTuning{
			Countdown: 3 * time.Second,
			Target:    10 * time.Second,
		},
	}
}

// LoadTuning decodes YAML on top of DefaultTuning.
func LoadTuning(r io.Reader) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.NewDecoder(r).Decode(&t); err != nil && err != io.EOF {
		return Tuning{}, fmt.Errorf("failed to parse tuning: %w", err)
	}
	return t, nil
}

// LoadTuningFile reads tuning from path.
func LoadTuningFile(path string) (Tuning, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to open tuning file: %w", err)
	}
	defer f.Close()
	return LoadTuning(f)
}
