package http

import (
	"context"
	"net/http"

	"github.com/mauv0809/bgstats/internal/config"
	"github.com/mauv0809/bgstats/internal/importer"
	"github.com/mauv0809/bgstats/internal/maintenance"
	"github.com/mauv0809/bgstats/internal/metrics"
	"github.com/mauv0809/bgstats/internal/notifier"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	Store          Pinger
	Importer       *importer.Importer
	Facade         *maintenance.Facade
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Notifier       notifier.Notifier
	Cfg            config.Config
	Router         *http.ServeMux
}

// pushEnvelope is the body of a Pub/Sub push subscription request.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"` // base64-encoded message payload
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}
