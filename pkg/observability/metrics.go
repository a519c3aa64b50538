package observability

import (
	"net/http"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for one or more trees.
// Collectors live on a private registry exposed through Handler.
type Metrics struct {
	registry *prometheus.Registry

	ticks       *prometheus.CounterVec
	enters      *prometheus.CounterVec
	exits       *prometheus.CounterVec
	transitions *prometheus.CounterVec
	running     prometheus.Gauge
}

// NewMetrics creates the collectors under namespace (e.g. "bevtree").
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_ticks_total",
				Help:      "Total number of node ticks by result status",
			},
			[]string{"node", "type", "status"},
		),
		enters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "leaf_enters_total",
				Help:      "Total number of leaf runs started",
			},
			[]string{"node"},
		),
		exits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "leaf_exits_total",
				Help:      "Total number of leaf runs ended by exit status",
			},
			[]string{"node", "status"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "node_transitions_total",
				Help:      "Total number of transitions sent to a node",
			},
			[]string{"node"},
		),
		running: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "leaves_running",
				Help:      "Number of leaves entered and not yet exited",
			},
		),
	}
	m.registry.MustRegister(m.ticks, m.enters, m.exits, m.transitions, m.running)
	return m
}

// Hooks returns the lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			m.enters.WithLabelValues(e.Name).Inc()
			m.running.Inc()
		},
		OnNodeExit: func(e *domain.NodeEvent) {
			m.exits.WithLabelValues(e.Name, e.Status.String()).Inc()
			m.running.Dec()
		},
		OnNodeTick: func(e *domain.NodeEvent) {
			m.ticks.WithLabelValues(e.Name, e.NodeType, e.Status.String()).Inc()
		},
		OnNodeTransition: func(e *domain.NodeEvent) {
			m.transitions.WithLabelValues(e.Name).Inc()
		},
	}
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
