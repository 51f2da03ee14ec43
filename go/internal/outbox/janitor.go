package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type JanitorConfig struct {
	Schedule  string        // cron spec, e.g. "@hourly"
	Retention time.Duration // how long sent rows are kept
}

func DefaultJanitorConfig() JanitorConfig {
	return JanitorConfig{Schedule: "@hourly", Retention: 24 * time.Hour}
}

// Janitor deletes outbox rows that were relayed longer than Retention ago.
type Janitor struct {
	store Store
	cfg   JanitorConfig
	clock clockwork.Clock
	cron  *cron.Cron
}

func NewJanitor(store Store, cfg JanitorConfig, clock clockwork.Clock) *Janitor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Janitor{store: store, cfg: cfg, clock: clock}
}

// Purge removes expired rows once and returns how many were deleted.
func (j *Janitor) Purge(ctx context.Context) (int64, error) {
	cutoff := j.clock.Now().Add(-j.cfg.Retention)
	n, err := j.store.PurgeSentOutbox(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge sent outbox: %w", err)
	}
	log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("purged sent outbox rows")
	return n, nil
}

// Start schedules Purge until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(j.cfg.Schedule, func() {
		if _, err := j.Purge(ctx); err != nil {
			log.Error().Err(err).Msg("janitor run failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule janitor %q: %w", j.cfg.Schedule, err)
	}
	j.cron = c
	c.Start()
	log.Info().Str("schedule", j.cfg.Schedule).Dur("retention", j.cfg.Retention).Msg("outbox janitor started")

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return nil
}
