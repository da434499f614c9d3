// Package scheduler owns the polling cadence for day rollover. The
// engine itself is a pure function of (date, templates, markers); this
// package decides when "materialize for date D" fires: once per local
// calendar day, detected by a cron-driven poll.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"github.com/jdziat/recurring-tasks/pkg/core"
	"github.com/jdziat/recurring-tasks/pkg/engine"
)

// DefaultCronSpec polls every minute; the per-day latch keeps the
// materialization itself to once per rollover.
const DefaultCronSpec = "@every 1m"

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithCronSpec sets the poll cadence (robfig/cron syntax).
func WithCronSpec(spec string) Option {
	return func(s *Scheduler) { s.spec = spec }
}

// WithLocation sets the zone whose calendar days drive rollover.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) { s.loc = loc }
}

// WithLogger sets the scheduler logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// Scheduler triggers the pipeline on local-day rollover and runs a
// janitor sweep on every poll.
type Scheduler struct {
	pipeline *engine.Pipeline
	spec     string
	loc      *time.Location
	logger   *slog.Logger

	mu      sync.Mutex
	lastKey string
}

// New creates a scheduler for the given pipeline.
func New(p *engine.Pipeline, opts ...Option) *Scheduler {
	s := &Scheduler{
		pipeline: p,
		spec:     DefaultCronSpec,
		loc:      time.Local,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Poll runs one scheduler tick as of the given instant: a sweep every
// time, a materialization pass only when the local calendar day has
// changed since the previous poll. Returns whether materialization
// ran.
func (s *Scheduler) Poll(ctx context.Context, at time.Time) bool {
	day := now.With(at.In(s.loc)).BeginningOfDay()
	key := core.DateKey(day)

	s.mu.Lock()
	rolled := key != s.lastKey
	if rolled {
		s.lastKey = key
	}
	s.mu.Unlock()

	if rolled {
		s.logger.Info("day rollover", "date", key)
		s.pipeline.MaterializeDate(ctx, day)
	}
	s.pipeline.Sweep(ctx)
	return rolled
}

// Start polls immediately, then on the configured cron cadence, and
// blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.loc))
	_, err := c.AddFunc(s.spec, func() {
		s.Poll(ctx, time.Now())
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid cron spec %q: %w", s.spec, err)
	}

	s.Poll(ctx, time.Now())
	c.Start()

	<-ctx.Done()
	// Let an in-flight tick finish before returning.
	<-c.Stop().Done()
	return ctx.Err()
}
