package cli

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/techdd/pkg/observability"
	"github.com/matzehuels/techdd/pkg/pipeline"
)

// metricsSink collects run metrics and writes them in the Prometheus text
// format, for node_exporter's textfile collector or CI artifacts.
type metricsSink struct {
	path     string
	registry *prometheus.Registry
	metrics  *observability.Metrics
}

// newMetricsSink returns nil when path is empty.
func newMetricsSink(path string) *metricsSink {
	if path == "" {
		return nil
	}
	reg := prometheus.NewRegistry()
	return &metricsSink{path: path, registry: reg, metrics: observability.NewMetrics(reg)}
}

func (m *metricsSink) apply(opts *pipeline.Options) {
	if m == nil {
		return
	}
	opts.HTTPHooks = m.metrics
	opts.EnrichHooks = m.metrics
}

func (m *metricsSink) flush() error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(m.path, m.registry)
}
