package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const attrStatus = "status"

// TracingCollector starts one OpenTelemetry span per StartSpan call.
type TracingCollector struct {
	tracer trace.Tracer
}

func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan returns ctx carrying the new span, so nested operations become child spans.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attributes(attrs)...))

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan ends spans that were started by this collector and ignores everything else.
func (t *TracingCollector) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	otelSpanCtx.span.SetAttributes(attributes(attrs)...)
	otelSpanCtx.SetStatus(status)
	otelSpanCtx.span.End()
}

var _ eventstore.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext wraps a trace.Span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus records status as attribute and maps it to an OpenTelemetry status code.
// Business rejections are recorded as errors; idempotent outcomes are OK.
func (s *OTelSpanContext) SetStatus(status string) {
	s.span.SetAttributes(attribute.String(attrStatus, status))

	switch status {
	case "success", "idempotent":
		s.span.SetStatus(codes.Ok, "")
	case "canceled":
		s.span.SetStatus(codes.Error, "operation canceled")
	case "timeout":
		s.span.SetStatus(codes.Error, "operation timed out")
	case "concurrency_conflict":
		s.span.SetStatus(codes.Error, "concurrency conflict")
	case "error":
		s.span.SetStatus(codes.Error, "operation failed")
	}
}

func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

var _ eventstore.SpanContext = (*OTelSpanContext)(nil)
