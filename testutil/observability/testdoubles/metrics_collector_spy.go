package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	kindDuration = "duration"
	kindCounter  = "counter"
	kindValue    = "value"
)

// MetricsCollectorSpy captures metrics calls. It implements eventstore.ContextualMetricsCollector,
// the context-free and the contextual calls end up in the same records.
type MetricsCollectorSpy struct {
	records     []SpyMetricRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpyMetricRecord represents one recorded metric call.
type SpyMetricRecord struct {
	Kind     string
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy. Set recordCalls to true to capture calls.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{recordCalls: recordCalls}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: kindDuration, Metric: metric, Duration: duration, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: kindCounter, Metric: metric, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.record(SpyMetricRecord{Kind: kindValue, Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

func (s *MetricsCollectorSpy) record(r SpyMetricRecord) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, r)
}

// GetRecords returns a copy of all captured records.
func (s *MetricsCollectorSpy) GetRecords() []SpyMetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyMetricRecord(nil), s.records...)
}

// HasDurationRecordForMetric starts a fluent chain over the duration records of metric.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(kindDuration, metric)
}

// HasCounterRecordForMetric starts a fluent chain over the counter records of metric.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(kindCounter, metric)
}

// HasValueRecordForMetric starts a fluent chain over the value records of metric.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	return s.matcher(kindValue, metric)
}

// CountCounterRecordsForMetric counts the counter records of metric.
func (s *MetricsCollectorSpy) CountCounterRecordsForMetric(metric string) int {
	return len(s.matcher(kindCounter, metric).candidates)
}

// CountDurationRecordsForMetric counts the duration records of metric.
func (s *MetricsCollectorSpy) CountDurationRecordsForMetric(metric string) int {
	return len(s.matcher(kindDuration, metric).candidates)
}

func (s *MetricsCollectorSpy) matcher(kind, metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &MetricRecordMatcher{}
	for _, r := range s.records {
		if r.Kind == kind && r.Metric == metric {
			m.candidates = append(m.candidates, r)
		}
	}

	return m
}

// MetricRecordMatcher narrows down the matching records with every With... call.
type MetricRecordMatcher struct {
	candidates []SpyMetricRecord
}

// WithLabel keeps the records that carry key=value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, r := range m.candidates {
		if r.Labels[key] == value {
			kept = append(kept, r)
		}
	}
	m.candidates = kept

	return m
}

// WithStatus keeps the records with the status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithOperation keeps the records with the operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// WithValue keeps the value records with exactly value.
func (m *MetricRecordMatcher) WithValue(value float64) *MetricRecordMatcher {
	kept := m.candidates[:0:0]
	for _, r := range m.candidates {
		if r.Value == value {
			kept = append(kept, r)
		}
	}
	m.candidates = kept

	return m
}

// Assert returns true if at least one record survived the chain.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

var _ eventstore.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
