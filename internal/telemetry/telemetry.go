// Package telemetry records gate and resolver metrics with OpenTelemetry.
//
// The client has no metrics backend. When enabled, measurements are held by
// a manual reader and written to the log file on shutdown; when disabled a
// no-op meter is used and nothing is recorded.
package telemetry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/farmily/farmily/internal/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const meterName = "github.com/farmily/farmily"

// Provider owns the meter provider for the process.
type Provider struct {
	mp     *sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
	meter  metric.Meter
}

func New(enabled bool) *Provider {
	if !enabled {
		return &Provider{meter: noop.NewMeterProvider().Meter(meterName)}
	}

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return &Provider{mp: mp, reader: reader, meter: mp.Meter(meterName)}
}

func (p *Provider) Meter() metric.Meter {
	return p.meter
}

func (p *Provider) Enabled() bool {
	return p.mp != nil
}

// Point is one flattened measurement. Counters fill Value; histograms fill
// Count and Sum.
type Point struct {
	Name  string
	Attrs string
	Value int64
	Count uint64
	Sum   float64
}

// Snapshot collects everything recorded so far, sorted by name and attributes.
func (p *Provider) Snapshot(ctx context.Context) ([]Point, error) {
	if p.reader == nil {
		return nil, nil
	}

	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("failed to collect metrics: %w", err)
	}

	var points []Point
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					points = append(points, Point{Name: m.Name, Attrs: formatAttrs(dp.Attributes), Value: dp.Value})
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					points = append(points, Point{Name: m.Name, Attrs: formatAttrs(dp.Attributes), Count: dp.Count, Sum: dp.Sum})
				}
			}
		}
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Name != points[j].Name {
			return points[i].Name < points[j].Name
		}
		return points[i].Attrs < points[j].Attrs
	})
	return points, nil
}

// Shutdown writes the final snapshot to log and stops the provider.
func (p *Provider) Shutdown(ctx context.Context, log logging.Logger) error {
	if p.mp == nil {
		return nil
	}

	points, err := p.Snapshot(ctx)
	if err != nil {
		log.Warn(ctx, "metrics snapshot failed", "error", err)
	}
	for _, pt := range points {
		log.Info(ctx, "metric", "name", pt.Name, "attrs", pt.Attrs, "value", pt.Value, "count", pt.Count, "sum", pt.Sum)
	}

	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

func formatAttrs(set attribute.Set) string {
	kvs := set.ToSlice()
	parts := make([]string, 0, len(kvs))
	for _, kv := range kvs {
		parts = append(parts, string(kv.Key)+"="+kv.Value.Emit())
	}
	return strings.Join(parts, ",")
}

// GateMetrics counts gate fetch outcomes and their latency, and resolver
// state transitions.
type GateMetrics struct {
	fetches     metric.Int64Counter
	duration    metric.Float64Histogram
	transitions metric.Int64Counter
}

func NewGateMetrics(meter metric.Meter) (*GateMetrics, error) {
	fetches, err := meter.Int64Counter("farmily.gate.fetches",
		metric.WithDescription("Gate fetch attempts by outcome"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("farmily.gate.fetch.duration",
		metric.WithDescription("Gate fetch duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter("farmily.resolver.transitions",
		metric.WithDescription("Resolver state transitions by target state"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	return &GateMetrics{fetches: fetches, duration: duration, transitions: transitions}, nil
}

// RecordFetch records one settled fetch.
func (m *GateMetrics) RecordFetch(ctx context.Context, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.fetches.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

func (m *GateMetrics) RecordTransition(ctx context.Context, state string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
}
