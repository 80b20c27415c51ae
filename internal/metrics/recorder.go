package metrics

import "time"

// ResultLabel enumerates step result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for update runs.
type Recorder interface {
	ObserveStepDuration(step string, d time.Duration)
	IncStepResult(step string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	SetDocumentWritten(written bool)
	IncUpstreamFailure(provider string)
	ObserveWidgetProbe(widget string, d time.Duration, healthy bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStepDuration(string, time.Duration)      {}
func (NoopRecorder) IncStepResult(string, ResultLabel)              {}
func (NoopRecorder) ObserveRunDuration(time.Duration)               {}
func (NoopRecorder) SetDocumentWritten(bool)                        {}
func (NoopRecorder) IncUpstreamFailure(string)                      {}
func (NoopRecorder) ObserveWidgetProbe(string, time.Duration, bool) {}
