package metrics

import "time"

// Compile-time interface checks.
var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = (*testRecorder)(nil)
)

type testRecorder struct {
	stepDurations map[string]int
	stepResults   map[string]map[ResultLabel]int
}

func (t *testRecorder) ObserveStepDuration(step string, _ time.Duration) {
	t.stepDurations[step]++
}

func (t *testRecorder) IncStepResult(step string, result ResultLabel) {
	m, ok := t.stepResults[step]
	if !ok {
		m = map[ResultLabel]int{}
		t.stepResults[step] = m
	}
	m[result]++
}

func (*testRecorder) ObserveRunDuration(time.Duration)               {}
func (*testRecorder) SetDocumentWritten(bool)                        {}
func (*testRecorder) IncUpstreamFailure(string)                      {}
func (*testRecorder) ObserveWidgetProbe(string, time.Duration, bool) {}
