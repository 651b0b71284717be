package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesImported    prometheus.Counter
	MatchesSkipped     prometheus.Counter
	ImportsFailed      prometheus.Counter
	ImportDuration     prometheus.Histogram
	QueriesFailed      prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
