package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "profilekit"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stepDuration    *prom.HistogramVec
	stepResults     *prom.CounterVec
	runDuration     prom.Histogram
	documentWritten prom.Gauge
	lastRun         prom.Gauge
	upstreamFailure *prom.CounterVec
	widgetLatency   *prom.HistogramVec
	widgetHealthy   *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers the run metrics on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stepDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of individual update steps",
			Buckets:   prom.DefBuckets,
		}, []string{"step"}),
		stepResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "step_results_total",
			Help:      "Update step results by outcome",
		}, []string{"step", "result"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total duration of an update run",
			Buckets:   prom.DefBuckets,
		}),
		documentWritten: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "document_written",
			Help:      "1 when the last run rewrote the document, 0 when it was already current",
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
		upstreamFailure: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_failures_total",
			Help:      "Failed calls to external data providers",
		}, []string{"provider"}),
		widgetLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "widget_probe_duration_seconds",
			Help:      "Latency of widget reachability probes",
			Buckets:   prom.DefBuckets,
		}, []string{"widget"}),
		widgetHealthy: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "widget_healthy",
			Help:      "1 when the widget answered 200 on the last probe",
		}, []string{"widget"}),
	}
	reg.MustRegister(pr.stepDuration, pr.stepResults, pr.runDuration, pr.documentWritten,
		pr.lastRun, pr.upstreamFailure, pr.widgetLatency, pr.widgetHealthy)
	return pr
}

func (p *PrometheusRecorder) ObserveStepDuration(step string, d time.Duration) {
	if p == nil {
		return
	}
	p.stepDuration.WithLabelValues(step).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStepResult(step string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stepResults.WithLabelValues(step, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
	p.lastRun.SetToCurrentTime()
}

func (p *PrometheusRecorder) SetDocumentWritten(written bool) {
	if p == nil {
		return
	}
	p.documentWritten.Set(boolValue(written))
}

func (p *PrometheusRecorder) IncUpstreamFailure(provider string) {
	if p == nil {
		return
	}
	p.upstreamFailure.WithLabelValues(provider).Inc()
}

func (p *PrometheusRecorder) ObserveWidgetProbe(widget string, d time.Duration, healthy bool) {
	if p == nil {
		return
	}
	p.widgetLatency.WithLabelValues(widget).Observe(d.Seconds())
	p.widgetHealthy.WithLabelValues(widget).Set(boolValue(healthy))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
