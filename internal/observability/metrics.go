package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "venuekit/transport"

// RequestMetrics records per-venue REST request counters and latency through
// the global OpenTelemetry meter provider. With no provider configured the
// instruments are no-ops.
type RequestMetrics struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
}

var (
	metricsOnce sync.Once
	metricsInst *RequestMetrics
)

// Metrics returns the process-wide request metrics instance.
func Metrics() *RequestMetrics {
	metricsOnce.Do(func() {
		meter := otel.Meter(meterName)
		requests, _ := meter.Int64Counter("venue.requests",
			metric.WithDescription("REST requests issued per venue route"))
		failures, _ := meter.Int64Counter("venue.request_failures",
			metric.WithDescription("REST requests that ended in a classified error"))
		latency, _ := meter.Float64Histogram("venue.request_latency_ms",
			metric.WithDescription("REST round-trip latency in milliseconds"))
		metricsInst = &RequestMetrics{requests: requests, failures: failures, latency: latency}
	})
	return metricsInst
}

// ObserveRequest records one completed round trip.
func (m *RequestMetrics) ObserveRequest(ctx context.Context, venue, route string, latencyMS float64, failed bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("venue", venue),
		attribute.String("route", route),
	)
	m.requests.Add(ctx, 1, attrs)
	if failed {
		m.failures.Add(ctx, 1, attrs)
	}
	m.latency.Record(ctx, latencyMS, attrs)
}
