package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics methods are safe on a nil receiver so tests can skip wiring them.
type Metrics struct {
	registry      *prometheus.Registry
	submissions   *prometheus.CounterVec
	approvals     *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnel",
			Name:      "submissions_total",
			Help:      "Bank-transfer proof submissions by outcome.",
		}, []string{"outcome"}),
		approvals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnel",
			Name:      "approvals_total",
			Help:      "Approval link visits by outcome.",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnel",
			Name:      "notifications_total",
			Help:      "Best-effort sink calls by sink and outcome.",
		}, []string{"sink", "outcome"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions,
		m.approvals,
		m.notifications,
	)
	return m
}

func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Approval(outcome string) {
	if m == nil {
		return
	}
	m.approvals.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Notification(sink, outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(sink, outcome).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
