package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/profilekit/internal/logfields"
	"git.home.luguber.info/inful/profilekit/internal/observability"
	"git.home.luguber.info/inful/profilekit/internal/scheduler"
)

// ScheduleCmd implements the 'schedule' command.
type ScheduleCmd struct {
	UpdateFlags
}

func (s *ScheduleCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	s.apply(cfg)
	a := newApp(cfg, g)

	// Fail fast on broken inputs instead of on the first tick.
	if _, err := a.allSteps(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(observability.WithCommand(context.Background(), "schedule"), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunSchedule(ctx, a, s.Commit)
}

// RunSchedule runs updates until ctx is canceled.
func RunSchedule(ctx context.Context, a *app, commit bool) error {
	sched, err := scheduler.New(ctx, a.cfg.Schedule.Interval, func(ctx context.Context) {
		// Steps are rebuilt per run so research data edits are picked up.
		steps, err := a.allSteps()
		if err != nil {
			slog.ErrorContext(ctx, "Scheduled update skipped", logfields.Error(err))
			return
		}
		if _, err := a.run(ctx, commit, steps...); err != nil {
			slog.ErrorContext(ctx, "Scheduled update finished with errors", logfields.Error(err))
		}
	})
	if err != nil {
		return err
	}

	if a.cfg.Schedule.WatchResearch && a.cfg.Research.DataFile != "" {
		watcher, err := scheduler.NewFileWatcher([]string{a.cfg.Research.DataFile}, a.cfg.Schedule.Debounce, func() {
			slog.Info("Research data changed; updating", logfields.Path(a.cfg.Research.DataFile))
			if err := sched.Trigger(); err != nil {
				slog.Error("Failed to trigger update", logfields.Error(err))
			}
		})
		if err != nil {
			_ = sched.Stop()
			return err
		}
		watcher.Start(ctx)
		defer func() { _ = watcher.Stop() }()
	}

	sched.Start()
	slog.Info("Scheduler started, waiting for shutdown signal...",
		slog.Duration("interval", a.cfg.Schedule.Interval))

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping scheduler...")
	return sched.Stop()
}
