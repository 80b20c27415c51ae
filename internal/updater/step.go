package updater

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/profilekit/internal/forge"
	"git.home.luguber.info/inful/profilekit/internal/health"
	"git.home.luguber.info/inful/profilekit/internal/logfields"
	"git.home.luguber.info/inful/profilekit/internal/metrics"
	"git.home.luguber.info/inful/profilekit/internal/research"
	"git.home.luguber.info/inful/profilekit/internal/sections"
	"git.home.luguber.info/inful/profilekit/internal/splice"
)

// Step names.
const (
	StepMetrics  = "metrics"
	StepResearch = "research"
	StepActivity = "activity"
)

// Step regenerates one section of the document.
type Step interface {
	Name() string
	// Apply returns the document with the step's section updated. On error
	// the returned text is ignored.
	Apply(ctx context.Context, doc string) (string, error)
}

// MetricsStep refreshes the health and account statistics section.
type MetricsStep struct {
	Heading  string
	Anchor   *splice.Anchor
	Username string
	Health   health.Source
	Stats    forge.StatsProvider
	Recorder metrics.Recorder
	Now      func() time.Time

	// LastStats holds the statistics rendered by the latest Apply.
	LastStats forge.Stats
}

func (s *MetricsStep) Name() string { return StepMetrics }

// Apply implements Step. Unavailable data sources do not fail the step:
// health falls back to its display defaults and statistics to zero.
func (s *MetricsStep) Apply(ctx context.Context, doc string) (string, error) {
	snap, err := s.Health.Snapshot(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Health source unavailable; using defaults", logfields.Error(err))
		snap = health.Snapshot{}
	}

	stats, err := s.Stats.FetchStats(ctx, s.Username)
	if err != nil {
		slog.WarnContext(ctx, "GitHub statistics unavailable; reporting zero",
			logfields.User(s.Username), logfields.Error(err))
		recorderOrNoop(s.Recorder).IncUpstreamFailure("github")
		stats = forge.Stats{}
	}
	s.LastStats = stats

	content := sections.RenderMetrics(s.Heading, snap, stats, nowOrDefault(s.Now)())
	res, err := splice.Splice(doc, splice.Heading{Text: s.Heading}, content, splice.Options{Anchor: s.Anchor})
	if err != nil {
		return "", err
	}
	logSplice(ctx, s.Heading, res)
	return res.Text, nil
}

// ResearchStep refreshes the research status section.
type ResearchStep struct {
	Heading string
	Anchor  *splice.Anchor
	Data    *research.Data
	Now     func() time.Time
}

func (s *ResearchStep) Name() string { return StepResearch }

// Apply implements Step.
func (s *ResearchStep) Apply(ctx context.Context, doc string) (string, error) {
	content := research.RenderStatus(s.Heading, s.Data, nowOrDefault(s.Now)())
	res, err := splice.Splice(doc, splice.Heading{Text: s.Heading}, content, splice.Options{Anchor: s.Anchor})
	if err != nil {
		return "", err
	}
	logSplice(ctx, s.Heading, res)
	return res.Text, nil
}

// ActivityStep refreshes the list between the activity comment markers. The
// markers must already exist; the step never inserts them.
type ActivityStep struct {
	Section string
	Org     string
	Limit   int
	Data    *research.Data
	Now     func() time.Time
}

func (s *ActivityStep) Name() string { return StepActivity }

// Apply implements Step.
func (s *ActivityStep) Apply(ctx context.Context, doc string) (string, error) {
	content := research.RenderActivity(s.Data, s.Org, s.Limit, nowOrDefault(s.Now)())
	res, err := splice.Splice(doc, splice.CommentSentinel(s.Section), content, splice.Options{AllowEmpty: true})
	if err != nil {
		return "", err
	}
	logSplice(ctx, s.Section, res)
	return res.Text, nil
}

// FailedStep stands in for a step whose inputs could not be prepared, such as
// unreadable research data. It fails with Err and leaves the document alone,
// so the remaining steps of the run still apply.
type FailedStep struct {
	StepName string
	Err      error
}

func (s *FailedStep) Name() string { return s.StepName }

// Apply implements Step.
func (s *FailedStep) Apply(context.Context, string) (string, error) { return "", s.Err }

func logSplice(ctx context.Context, section string, res splice.Result) {
	slog.DebugContext(ctx, "Section spliced",
		logfields.Section(section),
		logfields.Action(string(res.Action)),
		logfields.Bytes(res.Range.End-res.Range.Start))
}

func nowOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

func recorderOrNoop(r metrics.Recorder) metrics.Recorder {
	if r == nil {
		return metrics.NoopRecorder{}
	}
	return r
}
