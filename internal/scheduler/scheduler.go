// Package scheduler drives the periodic window ticks that trigger
// fusion. Four independent periodic ticks (one per WindowType) plus a
// single immediate tick at start, per §4.5.
package scheduler

import (
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

// TickFunc is invoked once per tick with the WindowType that fired.
type TickFunc func(w hsimodel.WindowType)

// Scheduler owns one gocron job per WindowType.
type Scheduler struct {
	cron gocron.Scheduler
	jobs []gocron.Job
}

// New constructs a Scheduler. It does not start any jobs until Start
// is called.
func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("scheduler: new: %w", err)
	}
	return &Scheduler{cron: s}, nil
}

// Start schedules all four window ticks, each firing immediately once
// and then at its fixed period, and starts the underlying cron.
func (s *Scheduler) Start(tick TickFunc) error {
	for _, w := range hsimodel.AllWindowTypes() {
		w := w
		job, err := s.cron.NewJob(
			gocron.DurationJob(w.Duration()),
			gocron.NewTask(func() {
				defer func() {
					if r := recover(); r != nil {
						log.Error().
							Str("window_type", string(w)).
							Interface("panic", r).
							Msg("scheduler tick panicked, skipping")
					}
				}()
				tick(w)
			}),
			gocron.WithName(string(w)),
			gocron.WithTags(string(w)),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return fmt.Errorf("scheduler: schedule %s: %w", w, err)
		}
		s.jobs = append(s.jobs, job)
	}

	s.cron.Start()
	return nil
}

// Stop cancels all timers; no further callbacks fire afterward.
func (s *Scheduler) Stop() error {
	if err := s.cron.Shutdown(); err != nil {
		return fmt.Errorf("scheduler: shutdown: %w", err)
	}
	return nil
}
