// Package metrics holds the Prometheus collectors of the workflow service.
// Collectors live on a private registry owned by the composition root, not
// on the global default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orderflow"

type Metrics struct {
	registry *prometheus.Registry

	ModificationRequests *prometheus.CounterVec
	Reviews              *prometheus.CounterVec
	Cancellations        *prometheus.CounterVec
	WorkflowFailures     *prometheus.CounterVec
	NotificationsSent    prometheus.Counter
	NotificationsFailed  prometheus.Counter
	RelayRuns            *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ModificationRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "modification_requests_total",
			Help:      "Modification requests filed, by modification type.",
		}, []string{"type"}),
		Reviews: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "modification_reviews_total",
			Help:      "Modification requests reviewed, by decision.",
		}, []string{"decision"}),
		Cancellations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_cancellations_total",
			Help:      "Direct order cancellations, by role of the actor.",
		}, []string{"role"}),
		WorkflowFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_failures_total",
			Help:      "Refused or failed workflow operations, by operation and reason.",
		}, []string{"operation", "reason"}),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_delivered_total",
			Help:      "Notifications handed to the notifier successfully.",
		}),
		NotificationsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Notification delivery attempts that failed.",
		}),
		RelayRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_relay_runs_total",
			Help:      "Outbox relay runs, by trigger and result.",
		}, []string{"trigger", "result"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
