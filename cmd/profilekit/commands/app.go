package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/profilekit/internal/config"
	"git.home.luguber.info/inful/profilekit/internal/forge"
	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
	"git.home.luguber.info/inful/profilekit/internal/git"
	"git.home.luguber.info/inful/profilekit/internal/health"
	"git.home.luguber.info/inful/profilekit/internal/logfields"
	"git.home.luguber.info/inful/profilekit/internal/metrics"
	"git.home.luguber.info/inful/profilekit/internal/research"
	"git.home.luguber.info/inful/profilekit/internal/splice"
	"git.home.luguber.info/inful/profilekit/internal/updater"
	"git.home.luguber.info/inful/profilekit/internal/widgets"
)

// app wires configuration into the update components for one command.
type app struct {
	cfg      *config.Config
	g        *Global
	registry *prom.Registry
	recorder metrics.Recorder
}

func newApp(cfg *config.Config, g *Global) *app {
	a := &app{cfg: cfg, g: g, recorder: metrics.NoopRecorder{}}
	if cfg.Metrics.TextfilePath != "" {
		a.registry = prom.NewRegistry()
		a.recorder = metrics.NewPrometheusRecorder(a.registry)
	}
	return a
}

func (a *app) healthSource() (health.Source, error) {
	if a.cfg.Health.Source == config.HealthSourceStatic {
		snap, err := health.FromMap(a.cfg.Health.Static)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid static health values").Build()
		}
		return health.StaticSource{Value: snap}, nil
	}
	return health.NewRandomSource(a.cfg.Health.Seed, a.g.Now), nil
}

func (a *app) statsProvider() forge.StatsProvider {
	return forge.NewGitHubClient(forge.GitHubOptions{
		APIURL:  a.cfg.GitHub.APIURL,
		Token:   a.cfg.GitHub.Token,
		Timeout: a.cfg.GitHub.Timeout,
	})
}

func (a *app) researchData() (*research.Data, error) {
	return research.Load(a.cfg.Research.DataFile)
}

func anchorFor(sc config.SectionConfig) *splice.Anchor {
	if sc.Anchor == "" {
		return nil
	}
	pos := splice.Before
	if sc.AnchorPosition == config.AnchorAfter {
		pos = splice.After
	}
	return &splice.Anchor{Text: sc.Anchor, Position: pos, Scope: sc.AnchorScope}
}

func (a *app) metricsStep() (*updater.MetricsStep, error) {
	src, err := a.healthSource()
	if err != nil {
		return nil, err
	}
	return &updater.MetricsStep{
		Heading:  a.cfg.Sections.Metrics.Heading,
		Anchor:   anchorFor(a.cfg.Sections.Metrics),
		Username: a.cfg.GitHub.Username,
		Health:   src,
		Stats:    a.statsProvider(),
		Recorder: a.recorder,
		Now:      a.g.Now,
	}, nil
}

// researchSteps returns the research and activity steps. When the research
// data cannot be loaded both become failing steps, which leaves the other
// steps of the run unaffected.
func (a *app) researchSteps() []updater.Step {
	data, err := a.researchData()
	if err != nil {
		slog.Warn("Research data unavailable", logfields.Path(a.cfg.Research.DataFile), logfields.Error(err))
		return []updater.Step{
			&updater.FailedStep{StepName: updater.StepResearch, Err: err},
			&updater.FailedStep{StepName: updater.StepActivity, Err: err},
		}
	}
	return []updater.Step{
		&updater.ResearchStep{
			Heading: a.cfg.Sections.Research.Heading,
			Anchor:  anchorFor(a.cfg.Sections.Research),
			Data:    data,
			Now:     a.g.Now,
		},
		&updater.ActivityStep{
			Section: a.cfg.Sections.Activity,
			Org:     a.cfg.Research.ActivityOrg,
			Limit:   a.cfg.Research.MaxActivities,
			Data:    data,
			Now:     a.g.Now,
		},
	}
}

// run applies steps to the document, then exports metrics and commits when
// asked. The error is the fatal run error or, failing that, the step errors.
func (a *app) run(ctx context.Context, commit bool, steps ...updater.Step) (*updater.Report, error) {
	runner := updater.NewRunner(a.cfg.Document.Path, updater.WithRecorder(a.recorder))
	report, err := runner.Run(ctx, steps...)
	a.exportMetrics()
	if err != nil {
		return report, err
	}

	if commit && report.Written {
		if err := a.commit(); err != nil {
			return report, err
		}
	}
	return report, report.Err()
}

func (a *app) commit() error {
	path := a.cfg.Document.Path
	client, err := git.Open(filepath.Dir(path))
	if err != nil {
		return err
	}
	_, _, err = client.CommitFile(path, git.CommitOptions{
		Message:     a.cfg.Git.Message,
		AuthorName:  a.cfg.Git.AuthorName,
		AuthorEmail: a.cfg.Git.AuthorEmail,
		When:        a.g.Now(),
	})
	return err
}

func (a *app) exportMetrics() {
	if a.registry == nil {
		return
	}
	if err := metrics.WriteTextfile(a.registry, a.cfg.Metrics.TextfilePath); err != nil {
		slog.Warn("Metrics export failed", logfields.Path(a.cfg.Metrics.TextfilePath), logfields.Error(err))
	}
}

// widgetSet returns the default widgets, configured extras and, when enabled,
// the images embedded in the document.
func (a *app) widgetSet() []widgets.Widget {
	extra := make([]widgets.Widget, 0, len(a.cfg.Widgets.Extra))
	for _, w := range a.cfg.Widgets.Extra {
		extra = append(extra, widgets.Widget{Name: w.Name, URL: w.URL})
	}
	var set []widgets.Widget
	if !a.cfg.Widgets.DisableDefaults {
		set = widgets.DefaultWidgets(a.cfg.GitHub.Username)
	}
	set = widgets.Merge(set, extra)

	if a.cfg.Widgets.Discover {
		doc, err := os.ReadFile(filepath.Clean(a.cfg.Document.Path))
		if err != nil {
			slog.Warn("Cannot read document for widget discovery", logfields.Path(a.cfg.Document.Path), logfields.Error(err))
		} else {
			set = widgets.Merge(set, widgets.DiscoverImages(string(doc)))
		}
	}
	return set
}

func (a *app) probeWidgets(ctx context.Context) []widgets.Status {
	prober := widgets.NewProber(a.cfg.Widgets.Timeout, widgets.WithRecorder(a.recorder))
	statuses := prober.Probe(ctx, a.widgetSet())
	a.exportMetrics()
	return statuses
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.g.Stdout, format, args...)
}

func (a *app) printWidgets(statuses []widgets.Status) {
	a.printf("\n📊 Widget Health Status:\n")
	for _, s := range statuses {
		a.printf("  %s: %s (%s)\n", s.Name, s.Health, s.Latency)
	}
}

func (a *app) printSteps(report *updater.Report, labels map[string]string) {
	for _, s := range report.Steps {
		label := labels[s.Name]
		if label == "" {
			label = s.Name
		}
		if s.OK() {
			a.printf("  %s: ✅ Success\n", label)
		} else {
			a.printf("  %s: ❌ Failed (%v)\n", label, s.Err)
		}
	}
	if report.Written {
		a.printf("Document %s updated.\n", a.cfg.Document.Path)
	} else {
		a.printf("Document %s already up to date.\n", a.cfg.Document.Path)
	}
}

func (a *app) timestamp() string {
	return a.g.Now().UTC().Format("2006-01-02 15:04 UTC")
}
