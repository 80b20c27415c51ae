package updater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/inful/mdfp"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
	"git.home.luguber.info/inful/profilekit/internal/logfields"
	"git.home.luguber.info/inful/profilekit/internal/metrics"
	"git.home.luguber.info/inful/profilekit/internal/observability"
)

// StepResult is the outcome of one step in a run.
type StepResult struct {
	Name     string
	Changed  bool
	Duration time.Duration
	Err      error
}

// OK reports whether the step succeeded.
func (r StepResult) OK() bool { return r.Err == nil }

// Report summarizes a run.
type Report struct {
	RunID string
	Path  string
	Steps []StepResult
	// Written is true when the document content changed and was saved.
	Written bool
	// Fingerprint identifies the document content after the run.
	Fingerprint string
}

// OK reports whether every step succeeded.
func (r *Report) OK() bool {
	for _, s := range r.Steps {
		if !s.OK() {
			return false
		}
	}
	return true
}

// Step returns the result of the named step.
func (r *Report) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Err returns nil when every step succeeded. A single failure, or several
// sharing one cause, is returned as is; distinct failures are combined into a
// runtime error wrapping all of them.
func (r *Report) Err() error {
	var failed []error
	for _, s := range r.Steps {
		if s.Err == nil {
			continue
		}
		if !slices.ContainsFunc(failed, func(e error) bool { return errors.Is(s.Err, e) }) {
			failed = append(failed, s.Err)
		}
	}
	switch len(failed) {
	case 0:
		return nil
	case 1:
		return failed[0]
	default:
		return ferrors.RuntimeError(fmt.Sprintf("%d update steps failed", len(failed))).
			WithCause(errors.Join(failed...)).
			WithContext("run_id", r.RunID).
			Build()
	}
}

// Runner applies steps to one document file.
type Runner struct {
	path     string
	recorder metrics.Recorder
	runID    func() string
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithRecorder reports step and run metrics to rec.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithLogger sets the base logger. Run and step ids travel in the context;
// see observability.ContextHandler.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRunID replaces the run id generator.
func WithRunID(gen func() string) Option {
	return func(r *Runner) { r.runID = gen }
}

// NewRunner creates a Runner for the document at path.
func NewRunner(path string, opts ...Option) *Runner {
	r := &Runner{
		path:     path,
		recorder: metrics.NoopRecorder{},
		runID:    uuid.NewString,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the document path.
func (r *Runner) Path() string { return r.path }

// Run applies steps in order and saves the document when it changed.
//
// The returned error is non-nil only when the document cannot be read or
// written; step failures are recorded in the Report.
func (r *Runner) Run(ctx context.Context, steps ...Step) (*Report, error) {
	started := time.Now()
	report := &Report{RunID: r.runID(), Path: r.path}
	ctx = observability.WithRunID(ctx, report.RunID)
	log := r.logger.With(logfields.Path(r.path))

	raw, err := os.ReadFile(filepath.Clean(r.path))
	if err != nil {
		return report, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read document").
			Fatal().
			WithContext("path", r.path).
			Build()
	}
	original := string(raw)
	before := fingerprint(original)

	doc := original
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			report.Steps = append(report.Steps, StepResult{Name: step.Name(), Err: err})
			r.recorder.IncStepResult(step.Name(), metrics.ResultCanceled)
			continue
		}
		doc = r.runStep(ctx, log, step, doc, report)
	}

	report.Fingerprint = fingerprint(doc)
	if report.Fingerprint != before {
		if err := writeDocument(r.path, doc); err != nil {
			return report, err
		}
		report.Written = true
	}
	r.recorder.SetDocumentWritten(report.Written)
	r.recorder.ObserveRunDuration(time.Since(started))

	log.InfoContext(ctx, "Update run finished",
		slog.Bool("written", report.Written),
		slog.Bool("ok", report.OK()),
		logfields.Duration(time.Since(started)))
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, log *slog.Logger, step Step, doc string, report *Report) string {
	ctx = observability.WithStep(ctx, step.Name())
	started := time.Now()
	next, err := step.Apply(ctx, doc)
	res := StepResult{Name: step.Name(), Duration: time.Since(started), Err: err}
	r.recorder.ObserveStepDuration(step.Name(), res.Duration)

	if err != nil {
		report.Steps = append(report.Steps, res)
		r.recorder.IncStepResult(step.Name(), metrics.ResultFailed)
		log.ErrorContext(ctx, "Update step failed", logfields.Error(err))
		return doc
	}

	res.Changed = next != doc
	report.Steps = append(report.Steps, res)
	r.recorder.IncStepResult(step.Name(), metrics.ResultSuccess)
	log.InfoContext(ctx, "Update step completed",
		slog.Bool("changed", res.Changed),
		logfields.Duration(res.Duration))
	return next
}

func fingerprint(doc string) string {
	return mdfp.CalculateFingerprintFromParts("", doc)
}

func writeDocument(path, doc string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(doc), mode); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write document").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}
