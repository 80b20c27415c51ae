// Package metrics records run metrics for profilekit.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder collects into a registry
// that WriteTextfile exports in the node-exporter textfile format:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	runner := updater.NewRunner(path, updater.WithRecorder(rec))
//	...
//	_ = metrics.WriteTextfile(reg, "/var/lib/node_exporter/profilekit.prom")
//
// profilekit is a short-lived CLI, so metrics are written once at the end of
// a run instead of being served over HTTP.
package metrics
