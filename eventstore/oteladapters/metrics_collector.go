package oteladapters

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// MetricsCollector maps the collector interface to OpenTelemetry instruments:
//
//	RecordDuration   -> Float64Histogram in seconds
//	IncrementCounter -> Int64Counter
//	RecordValue      -> Float64Histogram without unit
//
// Instruments are created lazily and cached per metric name.
type MetricsCollector struct {
	meter metric.Meter

	mu         sync.RWMutex
	durations  map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	valueHists map[string]metric.Float64Histogram
}

func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		durations:  make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		valueHists: make(map[string]metric.Float64Histogram),
	}
}

func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	m.RecordDurationContext(context.Background(), metricName, duration, labels)
}

func (m *MetricsCollector) RecordDurationContext(ctx context.Context, metricName string, duration time.Duration, labels map[string]string) {
	histogram, ok := instrument(m, m.durations, metricName, func(name string) (metric.Float64Histogram, error) {
		return m.meter.Float64Histogram(name, metric.WithDescription(describe(name)), metric.WithUnit("s"))
	})
	if !ok {
		return
	}

	histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(attributes(labels)...))
}

func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	m.IncrementCounterContext(context.Background(), metricName, labels)
}

func (m *MetricsCollector) IncrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	counter, ok := instrument(m, m.counters, metricName, func(name string) (metric.Int64Counter, error) {
		return m.meter.Int64Counter(name, metric.WithDescription(describe(name)))
	})
	if !ok {
		return
	}

	counter.Add(ctx, 1, metric.WithAttributes(attributes(labels)...))
}

func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	m.RecordValueContext(context.Background(), metricName, value, labels)
}

func (m *MetricsCollector) RecordValueContext(ctx context.Context, metricName string, value float64, labels map[string]string) {
	histogram, ok := instrument(m, m.valueHists, metricName, func(name string) (metric.Float64Histogram, error) {
		return m.meter.Float64Histogram(name, metric.WithDescription(describe(name)))
	})
	if !ok {
		return
	}

	histogram.Record(ctx, value, metric.WithAttributes(attributes(labels)...))
}

// instrument returns the cached instrument for name or creates it. Creation errors are swallowed,
// observability must never fail an operation.
func instrument[I any](m *MetricsCollector, cache map[string]I, name string, create func(string) (I, error)) (I, bool) {
	m.mu.RLock()
	inst, exists := cache[name]
	m.mu.RUnlock()

	if exists {
		return inst, true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if inst, exists = cache[name]; exists {
		return inst, true
	}

	inst, err := create(name)
	if err != nil {
		var zero I
		return zero, false
	}

	cache[name] = inst

	return inst, true
}

func attributes(labels map[string]string) []attribute.KeyValue {
	keys := make([]string, 0, len(labels))
	for key := range labels {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(labels))
	for _, key := range keys {
		attrs = append(attrs, attribute.String(key, labels[key]))
	}

	return attrs
}

func describe(name string) string {
	switch {
	case strings.HasPrefix(name, "eventstore_"):
		return "event store " + strings.ReplaceAll(strings.TrimPrefix(name, "eventstore_"), "_", " ")
	case strings.HasPrefix(name, "commandhandler_"):
		return "command handler " + strings.ReplaceAll(strings.TrimPrefix(name, "commandhandler_"), "_", " ")
	case strings.HasPrefix(name, "queryhandler_"):
		return "query handler " + strings.ReplaceAll(strings.TrimPrefix(name, "queryhandler_"), "_", " ")
	default:
		return strings.ReplaceAll(name, "_", " ")
	}
}

var (
	_ eventstore.MetricsCollector           = (*MetricsCollector)(nil)
	_ eventstore.ContextualMetricsCollector = (*MetricsCollector)(nil)
)
