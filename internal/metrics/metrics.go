// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics instruments fsstate operations with OpenTelemetry
// counters and a latency histogram, exported over Prometheus's text format
// the way the teacher instruments GCS calls and filesystem ops.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// The default time buckets for operation latency, in milliseconds.
var defaultLatencyDistribution = metric.WithExplicitBucketBoundaries(
	1, 2, 3, 4, 5, 6, 8, 10, 13, 16, 20, 25, 30, 40, 50, 65, 80, 100, 130, 160, 200, 250, 300, 400, 500, 650, 800, 1000, 2000, 5000,
)

// Attr is one attribute attached to an operation count or latency sample,
// typically the operation's name.
type Attr struct {
	Key, Value string
}

// OpsHandle is the instrumentation surface Engine calls into around every
// operation: a count, an error count, and a latency sample.
type OpsHandle interface {
	OpsCount(ctx context.Context, inc int64, attrs []Attr)
	OpsErrorCount(ctx context.Context, inc int64, attrs []Attr)
	OpsLatency(ctx context.Context, latency time.Duration, attrs []Attr)
}

type otelHandle struct {
	opsCount      metric.Int64Counter
	opsErrorCount metric.Int64Counter
	opsLatency    metric.Float64Histogram
}

// NewProvider sets up an OpenTelemetry MeterProvider backed by a
// Prometheus exporter. Shutdown must be called on exit. The exporter
// registers its collector with the default Prometheus registry, so
// promhttp.Handler() alone is enough to serve /metrics.
func NewProvider() (*sdkmetric.MeterProvider, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("metrics: new prometheus exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	return provider, nil
}

// NewOpsHandle registers the three instruments this package exposes on
// meter, named after the operation they describe.
func NewOpsHandle(provider *sdkmetric.MeterProvider) (OpsHandle, error) {
	meter := provider.Meter("fstree/fsstate")

	opsCount, err := meter.Int64Counter("fs/ops_count", metric.WithDescription("Number of operations processed."))
	if err != nil {
		return nil, fmt.Errorf("metrics: ops_count instrument: %w", err)
	}
	opsErrorCount, err := meter.Int64Counter("fs/ops_error_count", metric.WithDescription("Number of operations that returned an error."))
	if err != nil {
		return nil, fmt.Errorf("metrics: ops_error_count instrument: %w", err)
	}
	opsLatency, err := meter.Float64Histogram("fs/ops_latency",
		metric.WithDescription("Operation latency in milliseconds."),
		metric.WithUnit("ms"),
		defaultLatencyDistribution,
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: ops_latency instrument: %w", err)
	}

	return &otelHandle{opsCount: opsCount, opsErrorCount: opsErrorCount, opsLatency: opsLatency}, nil
}

func attrSet(attrs []Attr) metric.MeasurementOption {
	kvs := make([]attribute.KeyValue, len(attrs))
	for i, a := range attrs {
		kvs[i] = attribute.String(a.Key, a.Value)
	}
	return metric.WithAttributes(kvs...)
}

func (h *otelHandle) OpsCount(ctx context.Context, inc int64, attrs []Attr) {
	h.opsCount.Add(ctx, inc, attrSet(attrs))
}

func (h *otelHandle) OpsErrorCount(ctx context.Context, inc int64, attrs []Attr) {
	h.opsErrorCount.Add(ctx, inc, attrSet(attrs))
}

func (h *otelHandle) OpsLatency(ctx context.Context, latency time.Duration, attrs []Attr) {
	h.opsLatency.Record(ctx, float64(latency.Milliseconds()), attrSet(attrs))
}
