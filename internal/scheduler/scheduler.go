// Package scheduler wraps cron for the optional automatic refresh.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates a new scheduler
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

// AddJob registers a job under a cron schedule, e.g. "@hourly" or
// "0 18 * * MON-FRI". Job errors are logged, never fatal.
func (s *Scheduler) AddJob(schedule, name string, job func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Debug().Str("job", name).Msg("running job")

		if err := job(context.Background()); err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("job failed")
		} else {
			s.log.Debug().Str("job", name).Msg("job completed")
		}
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("schedule", schedule).Str("job", name).Msg("job registered")
	return nil
}
