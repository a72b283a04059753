package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "techdd"

// Metrics implements [HTTPHooks] and [EnrichHooks] on Prometheus collectors.
type Metrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	retries   *prometheus.CounterVec
	errors    *prometheus.CounterVec
	tasks     *prometheus.CounterVec
	taskTime  *prometheus.HistogramVec
	inFlight  prometheus.Gauge
	vulnFound *prometheus.CounterVec
}

var (
	_ HTTPHooks   = (*Metrics)(nil)
	_ EnrichHooks = (*Metrics)(nil)
)

// NewMetrics creates the collectors and registers them with reg.
// It panics if the collectors are already registered, like MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "responses_total",
			Help:      "HTTP responses received from registries, by host and status code.",
		}, []string{"host", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of registry requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "retries_total",
			Help:      "Retries scheduled by the backoff fetcher.",
		}, []string{"host", "reason"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "transport_errors_total",
			Help:      "Requests that failed before a response was received.",
		}, []string{"host"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enrich",
			Name:      "tasks_total",
			Help:      "Enrichment tasks by ecosystem and outcome.",
		}, []string{"ecosystem", "outcome"}),
		taskTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "enrich",
			Name:      "task_duration_seconds",
			Help:      "Time spent enriching one package.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"ecosystem"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "enrich",
			Name:      "tasks_in_flight",
			Help:      "Enrichment tasks currently running.",
		}),
		vulnFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enrich",
			Name:      "vulnerable_packages_total",
			Help:      "Packages reported as having a known vulnerability.",
		}, []string{"ecosystem"}),
	}
	reg.MustRegister(m.requests, m.latency, m.retries, m.errors, m.tasks, m.taskTime, m.inFlight, m.vulnFound)
	return m
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, statusCode int, d time.Duration) {
	m.requests.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	m.latency.WithLabelValues(host).Observe(d.Seconds())
}

func (m *Metrics) OnRetry(_ context.Context, host string, statusCode int, _ time.Duration) {
	reason := "error"
	if statusCode == 429 {
		reason = "rate_limited"
	}
	m.retries.WithLabelValues(host, reason).Inc()
}

func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.errors.WithLabelValues(host).Inc()
}

func (m *Metrics) OnTaskStart(context.Context, string, string) {
	m.inFlight.Inc()
}

func (m *Metrics) OnTaskComplete(_ context.Context, ecosystem, _ string, found, vulnerable bool, d time.Duration, err error) {
	m.inFlight.Dec()
	outcome := "absent"
	switch {
	case err != nil:
		outcome = "failed"
	case found:
		outcome = "enriched"
	}
	m.tasks.WithLabelValues(ecosystem, outcome).Inc()
	m.taskTime.WithLabelValues(ecosystem).Observe(d.Seconds())
	if vulnerable {
		m.vulnFound.WithLabelValues(ecosystem).Inc()
	}
}
