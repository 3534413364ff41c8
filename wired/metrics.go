package wired

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's prometheus instruments.
type Metrics struct {
	registry *prometheus.Registry

	ConnectionsAccepted prometheus.Counter
	RequestsServed      prometheus.Counter
	RequestErrors       prometheus.Counter
}

// NewMetrics inits the instruments on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ConnectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wirehttp_connections_accepted_total",
			Help: "Connections accepted by the listener.",
		}),
		RequestsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wirehttp_requests_served_total",
			Help: "Requests answered by the handler.",
		}),
		RequestErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wirehttp_request_errors_total",
			Help: "Requests that ended in an error response.",
		}),
	}

	m.registry.MustRegister(m.ConnectionsAccepted, m.RequestsServed, m.RequestErrors)

	return m
}

// Handler exposes the registry in prometheus exposition format. The ops
// endpoint runs on net/http; the data path never does.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
