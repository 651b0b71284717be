package http

import (
	"net/http"

	"github.com/mauv0809/bgstats/internal/config"
	"github.com/mauv0809/bgstats/internal/importer"
	"github.com/mauv0809/bgstats/internal/maintenance"
	"github.com/mauv0809/bgstats/internal/metrics"
	"github.com/mauv0809/bgstats/internal/notifier"
)

// NewServer wires the handlers. notifier may be nil when Slack is not
// configured.
func NewServer(store Pinger, imp *importer.Importer, facade *maintenance.Facade, metricsSvc metrics.Metrics, metricsHandler http.Handler, notifier notifier.Notifier, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Importer:       imp,
		Facade:         facade,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Notifier:       notifier,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /import", Chain(s.ImportHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/import", Chain(s.PushImportHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/summary", Chain(s.PlayerSummaryHandler(), paramsMiddleware))
	s.Router.Handle("POST /players/erase", Chain(s.ErasePlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /erase-all", Chain(s.EraseAllHandler(), paramsMiddleware))
	s.Router.Handle("POST /query/select", Chain(s.SelectHandler(), paramsMiddleware))
	s.Router.Handle("POST /query/update", Chain(s.UpdateHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
