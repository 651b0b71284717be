package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bgstats_matches_imported_total",
			Help: "The total number of analysed matches recorded.",
		}),
		MatchesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bgstats_matches_skipped_total",
			Help: "The total number of imports skipped because the checksum was already recorded.",
		}),
		ImportsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bgstats_imports_failed_total",
			Help: "The total number of imports that were rolled back.",
		}),
		ImportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bgstats_import_duration_seconds",
			Help:    "The duration of individual match imports.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		QueriesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bgstats_queries_failed_total",
			Help: "The total number of ad-hoc queries rejected by the store.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bgstats_notifications_sent_total",
			Help: "The total number of import notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bgstats_notifications_failed_total",
			Help: "The total number of import notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bgstats_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesImported,
		s.MatchesSkipped,
		s.ImportsFailed,
		s.ImportDuration,
		s.QueriesFailed,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesImported() {
	s.MatchesImported.Inc()
}

func (s *Service) IncMatchesSkipped() {
	s.MatchesSkipped.Inc()
}

func (s *Service) IncImportsFailed() {
	s.ImportsFailed.Inc()
}

func (s *Service) ObserveImportDuration(seconds float64) {
	s.ImportDuration.Observe(seconds)
}

func (s *Service) IncQueriesFailed() {
	s.QueriesFailed.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
