// Package metrics exposes Prometheus instruments for advice runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"InvestAdvisor/internal/model"
)

const namespace = "investadvisor"

// Outcome labels for AdviceRequests.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the advisor's instruments on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	AdviceRequests  *prometheus.CounterVec
	Recommendations *prometheus.CounterVec
	AdviceDuration  *prometheus.HistogramVec
	DigestRuns      prometheus.Counter
	Clients         prometheus.Gauge
}

// New creates the instruments and registers them with a fresh registry,
// together with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AdviceRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advice_requests_total",
			Help:      "Advice requests by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		Recommendations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendations issued by action.",
		}, []string{"action"}),
		AdviceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "advice_duration_seconds",
			Help:      "Time to produce one advice response.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"trigger"}),
		DigestRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "digest_runs_total",
			Help:      "Scheduled digest executions.",
		}),
		Clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clients",
			Help:      "Clients in the loaded data set.",
		}),
	}
}

// ObserveAdvice records one finished advice request. resp may be nil when
// the request failed.
func (m *Metrics) ObserveAdvice(trigger model.Trigger, outcome string, elapsed time.Duration, resp *model.AdviceResponse) {
	m.AdviceRequests.WithLabelValues(string(trigger), outcome).Inc()
	m.AdviceDuration.WithLabelValues(string(trigger)).Observe(elapsed.Seconds())
	if resp == nil {
		return
	}
	for action, n := range resp.CountActions() {
		m.Recommendations.WithLabelValues(string(action)).Add(float64(n))
	}
}

// Registry returns the registry backing the instruments.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
