// Package scheduler runs profile updates periodically and when watched input
// files change.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/profilekit/internal/logfields"
)

// Task is the unit of work the scheduler runs.
type Task func(ctx context.Context)

// Scheduler wraps a gocron scheduler running a single update task.
type Scheduler struct {
	scheduler gocron.Scheduler
	job       gocron.Job
}

// New creates a scheduler that runs task every interval, starting as soon as
// Start is called. Runs never overlap; a tick arriving while the task is
// still running is skipped.
func New(ctx context.Context, interval time.Duration, task Task) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	job, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			slog.InfoContext(ctx, "Executing scheduled update", logfields.Name("profile-update"))
			task(ctx)
		}),
		gocron.WithName("profile-update"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic update job: %w", err)
	}

	return &Scheduler{scheduler: s, job: job}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler", slog.String("job_id", s.job.ID().String()))
	s.scheduler.Start()
}

// Trigger runs the task now, outside the regular interval.
func (s *Scheduler) Trigger() error {
	return s.job.RunNow()
}

// NextRun returns when the task is next due.
func (s *Scheduler) NextRun() (time.Time, error) {
	return s.job.NextRun()
}

// Stop gracefully shuts down the scheduler, waiting for a running task.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}
