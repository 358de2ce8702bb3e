package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the endpoint counters on a private registry so several
// instances (tests, embedded servers) never collide.
type Metrics struct {
	registry *prometheus.Registry

	created  prometheus.Counter
	deleted  prometheus.Counter
	rejected *prometheus.CounterVec
	degraded *prometheus.CounterVec
}

// New returns a zeroed Metrics collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "push_subscriptions_created_total",
			Help: "Subscriptions recorded by the endpoint",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "push_subscriptions_deleted_total",
			Help: "Subscriptions removed by the endpoint",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "push_sync_requests_rejected_total",
			Help: "Sync requests rejected by reason",
		}, []string{"reason"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "push_sync_side_effects_failed_total",
			Help: "Group index or event publish failures that did not fail the request",
		}, []string{"component"}),
	}
	m.registry.MustRegister(m.created, m.deleted, m.rejected, m.degraded)
	return m
}

func (m *Metrics) IncCreated()                    { m.created.Inc() }
func (m *Metrics) IncDeleted()                    { m.deleted.Inc() }
func (m *Metrics) IncRejected(reason string)      { m.rejected.WithLabelValues(reason).Inc() }
func (m *Metrics) IncDegraded(component string)   { m.degraded.WithLabelValues(component).Inc() }
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
