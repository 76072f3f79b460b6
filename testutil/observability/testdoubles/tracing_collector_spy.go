package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// SpySpanContext is the span handed out by TracingCollectorSpy.
type SpySpanContext struct {
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}
	c.attributes[key] = value
}

// TracingCollectorSpy captures StartSpan and FinishSpan calls.
type TracingCollectorSpy struct {
	spanRecords []*SpySpanRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpySpanRecord represents one span from start to finish.
type SpySpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	Finished        bool
	SpanContext     *SpySpanContext
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy. Set recordCalls to true to capture calls.
func NewTracingCollectorSpy(recordCalls bool) *TracingCollectorSpy {
	return &TracingCollectorSpy{recordCalls: recordCalls}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	if !s.recordCalls {
		return ctx, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	spanCtx := &SpySpanContext{}
	s.spanRecords = append(s.spanRecords, &SpySpanRecord{
		Name:            name,
		StartAttributes: maps.Clone(attrs),
		SpanContext:     spanCtx,
	})

	return ctx, spanCtx
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	spyCtx, ok := spanCtx.(*SpySpanContext)
	if !s.recordCalls || !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.spanRecords {
		if record.SpanContext == spyCtx {
			record.Status = status
			record.EndAttributes = maps.Clone(attrs)
			record.Finished = true
			return
		}
	}
}

// GetSpanRecordCount returns the number of started spans.
func (s *TracingCollectorSpy) GetSpanRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.spanRecords)
}

// HasSpanRecordForName starts a fluent chain over the spans named name.
func (s *TracingCollectorSpy) HasSpanRecordForName(name string) *SpanRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &SpanRecordMatcher{}
	for _, record := range s.spanRecords {
		if record.Name == name {
			m.candidates = append(m.candidates, *record)
		}
	}

	return m
}

// SpanRecordMatcher narrows down the matching spans with every With... call.
type SpanRecordMatcher struct {
	candidates []SpySpanRecord
}

func (m *SpanRecordMatcher) keep(pred func(SpySpanRecord) bool) *SpanRecordMatcher {
	kept := m.candidates[:0:0]
	for _, r := range m.candidates {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	m.candidates = kept

	return m
}

// WithStatus keeps finished spans with status.
func (m *SpanRecordMatcher) WithStatus(status string) *SpanRecordMatcher {
	return m.keep(func(r SpySpanRecord) bool { return r.Finished && r.Status == status })
}

// WithStartAttribute keeps spans started with key=value.
func (m *SpanRecordMatcher) WithStartAttribute(key, value string) *SpanRecordMatcher {
	return m.keep(func(r SpySpanRecord) bool { return r.StartAttributes[key] == value })
}

// WithEndAttribute keeps spans finished with key=value.
func (m *SpanRecordMatcher) WithEndAttribute(key, value string) *SpanRecordMatcher {
	return m.keep(func(r SpySpanRecord) bool { return r.EndAttributes[key] == value })
}

// Assert returns true if at least one span survived the chain.
func (m *SpanRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

var _ eventstore.TracingCollector = (*TracingCollectorSpy)(nil)
