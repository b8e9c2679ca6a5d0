// Package scheduler runs recurring maintenance jobs on cron schedules.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is a named unit of background work.
type Job interface {
	Run() error
	Name() string
}

// Scheduler wraps a seconds-granularity cron runner.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop halts scheduling and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("Scheduler stopped")
}

// AddJob registers a job against a six-field cron expression
// ("0 0 3 * * *") or a descriptor ("@daily", "@every 30s").
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() { s.runJob(job) })
	if err != nil {
		return err
	}

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("Job registered")

	return nil
}

func (s *Scheduler) runJob(job Job) {
	start := time.Now()

	if err := job.Run(); err != nil {
		s.log.Error().
			Err(err).
			Str("job", job.Name()).
			Dur("duration", time.Since(start)).
			Msg("Job failed")
		return
	}

	s.log.Debug().
		Str("job", job.Name()).
		Dur("duration", time.Since(start)).
		Msg("Job completed")
}
