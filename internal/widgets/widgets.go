// Package widgets checks that the third-party images embedded in a profile
// README still respond.
package widgets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/profilekit/internal/logfields"
	"git.home.luguber.info/inful/profilekit/internal/metrics"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 5 * time.Second

// maxErrorLen caps the error text kept in a Status.
const maxErrorLen = 50

// maxParallelProbes bounds concurrent HEAD requests.
const maxParallelProbes = 4

// Health indicators.
const (
	Healthy   = "🟢"
	Degraded  = "🟡"
	Unhealthy = "🔴"
)

// Widget is a named, externally hosted README image.
type Widget struct {
	Name string
	URL  string
}

// Status is the outcome of probing one widget.
type Status struct {
	Name   string
	URL    string
	Health string
	Code   int
	// Latency is the formatted response time, or "timeout" when the request failed.
	Latency string
	Error   string
}

// OK reports whether the widget answered 200.
func (s Status) OK() bool { return s.Health == Healthy }

// DefaultWidgets returns the stock widget set of a GitHub profile README.
func DefaultWidgets(username string) []Widget {
	u := url.QueryEscape(username)
	return []Widget{
		{Name: "github_stats", URL: "https://github-readme-stats.vercel.app/api?username=" + u},
		{Name: "github_streak", URL: "https://streak-stats.demolab.com?user=" + u},
		{Name: "visitor_badge", URL: "https://api.visitorbadge.io/api/visitors?path=https://github.com/" + u},
		{Name: "typing_svg", URL: "https://readme-typing-svg.demolab.com/"},
	}
}

// Prober issues HEAD requests against widgets.
type Prober struct {
	client   *http.Client
	recorder metrics.Recorder
}

// Option configures a Prober.
type Option func(*Prober)

// WithHTTPClient replaces the HTTP client. Its timeout is used as is.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Prober) { p.client = c }
}

// WithRecorder reports probe latencies to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Prober) {
		if r != nil {
			p.recorder = r
		}
	}
}

// NewProber creates a Prober with the given per-request timeout. A zero
// timeout uses DefaultTimeout.
func NewProber(timeout time.Duration, opts ...Option) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	p := &Prober{
		client:   &http.Client{Timeout: timeout},
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe checks the widgets, a few at a time. It never fails: problems are
// reported in the returned statuses, which keep the order of widgets.
func (p *Prober) Probe(ctx context.Context, widgets []Widget) []Status {
	out := make([]Status, len(widgets))
	var g errgroup.Group
	g.SetLimit(maxParallelProbes)
	for i, w := range widgets {
		g.Go(func() error {
			out[i] = p.probeOne(ctx, w)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (p *Prober) probeOne(ctx context.Context, w Widget) Status {
	st := Status{Name: w.Name, URL: w.URL}
	start := time.Now()

	code, err := p.head(ctx, w.URL)
	elapsed := time.Since(start)
	if err != nil {
		st.Health = Unhealthy
		st.Latency = "timeout"
		st.Error = truncate(err.Error(), maxErrorLen)
		slog.DebugContext(ctx, "Widget probe failed",
			logfields.Name(w.Name), logfields.URL(w.URL), logfields.Error(err))
		p.recorder.ObserveWidgetProbe(w.Name, elapsed, false)
		return st
	}

	st.Code = code
	st.Latency = fmt.Sprintf("%.2fs", elapsed.Seconds())
	st.Health = Degraded
	if code == http.StatusOK {
		st.Health = Healthy
	}
	slog.DebugContext(ctx, "Widget probed",
		logfields.Name(w.Name), logfields.Status(code), logfields.Duration(elapsed))
	p.recorder.ObserveWidgetProbe(w.Name, elapsed, st.OK())
	return st
}

func (p *Prober) head(ctx context.Context, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "profilekit-widget-probe/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
