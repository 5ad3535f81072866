package objects

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds the OpenTelemetry instruments recorded by a Client.
type Metrics struct {
	Ops          metric.Int64Counter
	Hits         metric.Int64Counter
	Misses       metric.Int64Counter
	WaitDuration metric.Float64Histogram
}

// SetupMetrics wires a Prometheus exporter into the global meter provider
// and returns the instruments plus an http.Handler serving the scrape
// endpoint.
func SetupMetrics(serviceName string) (*Metrics, http.Handler, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	m := &Metrics{}

	m.Ops, err = meter.Int64Counter(
		"robj_ops_total",
		metric.WithDescription("Total number of structure operations"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.Hits, err = meter.Int64Counter(
		"robj_hits_total",
		metric.WithDescription("Total number of reads that returned a value"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.Misses, err = meter.Int64Counter(
		"robj_misses_total",
		metric.WithDescription("Total number of reads that returned absent"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.WaitDuration, err = meter.Float64Histogram(
		"robj_blocking_pop_seconds",
		metric.WithDescription("Time spent waiting in blocking pops"),
	)
	if err != nil {
		return nil, nil, err
	}

	return m, promhttp.Handler(), nil
}

// RecordOp counts one operation against a structure kind.
func (m *Metrics) RecordOp(ctx context.Context, structure, op string) {
	m.Ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("structure", structure),
		attribute.String("op", op),
	))
}

// RecordHit counts a read that found a value.
func (m *Metrics) RecordHit(ctx context.Context, key string) {
	m.Hits.Add(ctx, 1, metric.WithAttributes(attribute.String("key", key)))
}

// RecordMiss counts a read that came back absent.
func (m *Metrics) RecordMiss(ctx context.Context, key string) {
	m.Misses.Add(ctx, 1, metric.WithAttributes(attribute.String("key", key)))
}

// RecordWait records how long a blocking pop spent suspended.
func (m *Metrics) RecordWait(ctx context.Context, structure string, d time.Duration) {
	m.WaitDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("structure", structure),
	))
}
