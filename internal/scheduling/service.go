// Package scheduling runs the time-driven triggers: cycle assignment,
// rollover penalties, and the monthly point reset. Cron specs and timezone
// come from configuration; dedup of duplicate ticks is the cron runner's
// single-fire guarantee, not ours.
package scheduling

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultJobTimeout bounds a single trigger run.
const DefaultJobTimeout = 2 * time.Minute

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Service owns the cron runner and the registered triggers.
type Service struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration
}

// NewService creates a scheduler bound to the given timezone.
func NewService(loc *time.Location, logger *slog.Logger) *Service {
	return &Service{
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger,
		timeout: DefaultJobTimeout,
	}
}

// Register adds a job under a standard 5-field cron spec. The job runs
// fire-and-forget: errors and panics are logged, never propagated into the
// runner.
func (s *Service) Register(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return err
	}
	s.logger.Info("scheduled trigger", "job", name, "spec", spec)
	return nil
}

func (s *Service) run(name string, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("trigger panicked", "job", name, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.logger.Error("trigger failed", "job", name, "error", err)
		return
	}
	s.logger.Info("trigger completed", "job", name, "duration", time.Since(start))
}

// Start launches the cron runner in its own goroutine.
func (s *Service) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs, bounded by ctx.
func (s *Service) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
