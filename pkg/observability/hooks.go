// Package observability provides hooks for metrics and tracing.
//
// Components that do I/O accept hook interfaces at construction time and
// default to no-op implementations, so instrumentation stays optional and the
// core packages never depend on a metrics backend. [Metrics] is the
// Prometheus-backed implementation wired by the CLI.
//
// # Usage
//
//	m := observability.NewMetrics(prometheus.NewRegistry())
//	fetcher := httputil.NewFetcher(client, httputil.WithHooks(m))
//	enricher, _ := deps.NewEnricher(registry, checker, deps.Options{Hooks: m})
package observability

import (
	"context"
	"time"
)

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the backoff fetcher.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request attempt.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response, whatever its status.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnRetry records a scheduled retry and the delay before it.
	OnRetry(ctx context.Context, host string, statusCode int, delay time.Duration)

	// OnError records a transport failure (network error, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Enrichment Hooks
// =============================================================================

// EnrichHooks receives events from the enrichment orchestrator.
type EnrichHooks interface {
	// OnTaskStart records the start of one package's enrichment.
	OnTaskStart(ctx context.Context, ecosystem, pkg string)

	// OnTaskComplete records the end of one package's enrichment.
	// found reports whether a record was produced; vulnerable whether the
	// vulnerability database knows of an issue. err is set when the task
	// failed outright (missing adapter, panic).
	OnTaskComplete(ctx context.Context, ecosystem, pkg string, found, vulnerable bool, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnRetry(context.Context, string, int, time.Duration)                    {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopEnrichHooks is a no-op implementation of EnrichHooks.
type NoopEnrichHooks struct{}

func (NoopEnrichHooks) OnTaskStart(context.Context, string, string) {}
func (NoopEnrichHooks) OnTaskComplete(context.Context, string, string, bool, bool, time.Duration, error) {
}
