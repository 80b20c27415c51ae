package commands

import (
	"context"

	"git.home.luguber.info/inful/profilekit/internal/observability"
	"git.home.luguber.info/inful/profilekit/internal/updater"
)

var stepLabels = map[string]string{
	updater.StepMetrics:  "Metrics Status",
	updater.StepResearch: "Research Status",
	updater.StepActivity: "Activity Status",
}

// MetricsCmd implements the 'metrics' command.
type MetricsCmd struct {
	UpdateFlags
	SkipWidgets bool `name:"skip-widgets" help:"Do not probe widget health after the update"`
}

func (m *MetricsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	m.apply(cfg)
	a := newApp(cfg, g)
	ctx := observability.WithCommand(context.Background(), "metrics")

	a.printf("🤖 Profile Metrics Updater\n")
	step, err := a.metricsStep()
	if err != nil {
		return err
	}
	report, runErr := a.run(ctx, m.Commit, step)
	if report != nil && len(report.Steps) > 0 {
		if report.OK() {
			a.printf("✅ Successfully updated metrics at %s\n", a.timestamp())
		}
		if langs := step.LastStats.PrimaryLanguages; len(langs) > 0 {
			a.printf("Primary languages: %v\n", langs)
		}
	}

	if !m.SkipWidgets {
		a.printWidgets(a.probeWidgets(ctx))
	}
	return runErr
}

// ResearchCmd implements the 'research' command.
type ResearchCmd struct {
	UpdateFlags
}

func (r *ResearchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	r.apply(cfg)
	a := newApp(cfg, g)

	a.printf("🔬 Research Status Updater\n")
	report, runErr := a.run(observability.WithCommand(context.Background(), "research"), r.Commit, a.researchSteps()...)
	if report != nil && len(report.Steps) > 0 {
		a.printf("\n📊 Update Summary:\n")
		a.printSteps(report, stepLabels)
	}
	return runErr
}

// UpdateCmd implements the 'update' command: every section in one pass.
type UpdateCmd struct {
	UpdateFlags
}

func (u *UpdateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	u.apply(cfg)
	a := newApp(cfg, g)

	steps, err := a.allSteps()
	if err != nil {
		return err
	}
	report, runErr := a.run(observability.WithCommand(context.Background(), "update"), u.Commit, steps...)
	if report != nil && len(report.Steps) > 0 {
		a.printf("📊 Update Summary:\n")
		a.printSteps(report, stepLabels)
	}
	return runErr
}

func (a *app) allSteps() ([]updater.Step, error) {
	metrics, err := a.metricsStep()
	if err != nil {
		return nil, err
	}
	return append([]updater.Step{metrics}, a.researchSteps()...), nil
}
