package config

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/oteladapters"
)

var ErrCreatingExporterFailed = errors.New("creating otlp exporter failed")

// ObservabilityProviders holds the OpenTelemetry providers and the adapters built on them.
type ObservabilityProviders struct {
	TracerProvider   *sdktrace.TracerProvider
	MeterProvider    *sdkmetric.MeterProvider
	Resource         *resource.Resource
	MetricsCollector *oteladapters.MetricsCollector
	TracingCollector *oteladapters.TracingCollector
	ContextualLogger *oteladapters.SlogBridgeLogger
}

type ProviderOption func(*providerOptions)

type providerOptions struct {
	spanProcessors []sdktrace.SpanProcessor
	metricReaders  []sdkmetric.Reader
	setGlobal      bool
}

// WithSpanProcessor registers e.g. a batch processor over an exporter.
func WithSpanProcessor(processor sdktrace.SpanProcessor) ProviderOption {
	return func(o *providerOptions) {
		o.spanProcessors = append(o.spanProcessors, processor)
	}
}

func WithMetricReader(reader sdkmetric.Reader) ProviderOption {
	return func(o *providerOptions) {
		o.metricReaders = append(o.metricReaders, reader)
	}
}

// WithGlobalProviders also installs the providers as the otel globals.
func WithGlobalProviders() ProviderOption {
	return func(o *providerOptions) {
		o.setGlobal = true
	}
}

// NewObservabilityProviders creates sdk providers for cfg and the eventstore adapters on top of them.
// Spans are batched to cfg.TraceEndpoint and metrics are pushed to cfg.MetricEndpoint every cfg.MetricInterval,
// both over OTLP gRPC. Processors and readers passed as options are attached in addition.
func NewObservabilityProviders(ctx context.Context, cfg ObservabilityConfig, options ...ProviderOption) (*ObservabilityProviders, error) {
	opts := providerOptions{}
	for _, option := range options {
		option(&opts)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceOptions := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.TraceEndpoint != "" {
		traceExporter, exporterErr := newTraceExporter(ctx, cfg)
		if exporterErr != nil {
			return nil, errors.Join(ErrCreatingExporterFailed, exporterErr)
		}
		traceOptions = append(traceOptions, sdktrace.WithBatcher(traceExporter))
	}
	for _, processor := range opts.spanProcessors {
		traceOptions = append(traceOptions, sdktrace.WithSpanProcessor(processor))
	}
	tracerProvider := sdktrace.NewTracerProvider(traceOptions...)

	metricOptions := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if cfg.MetricEndpoint != "" {
		metricExporter, exporterErr := newMetricExporter(ctx, cfg)
		if exporterErr != nil {
			return nil, errors.Join(ErrCreatingExporterFailed, exporterErr, tracerProvider.Shutdown(ctx))
		}
		metricOptions = append(metricOptions, sdkmetric.WithReader(newPeriodicReader(metricExporter, cfg.MetricInterval)))
	}
	for _, reader := range opts.metricReaders {
		metricOptions = append(metricOptions, sdkmetric.WithReader(reader))
	}
	meterProvider := sdkmetric.NewMeterProvider(metricOptions...)

	if opts.setGlobal {
		otel.SetTracerProvider(tracerProvider)
		otel.SetMeterProvider(meterProvider)
		otel.SetTextMapPropagator(propagation.TraceContext{})
	}

	return &ObservabilityProviders{
		TracerProvider:   tracerProvider,
		MeterProvider:    meterProvider,
		Resource:         res,
		MetricsCollector: oteladapters.NewMetricsCollector(meterProvider.Meter(cfg.ServiceName)),
		TracingCollector: oteladapters.NewTracingCollector(tracerProvider.Tracer(cfg.ServiceName)),
		ContextualLogger: oteladapters.NewSlogBridgeLogger(cfg.ServiceName),
	}, nil
}

// Shutdown flushes and stops both providers.
func (p *ObservabilityProviders) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return errors.Join(
		p.TracerProvider.Shutdown(ctx),
		p.MeterProvider.Shutdown(ctx),
	)
}

func newTraceExporter(ctx context.Context, cfg ObservabilityConfig) (*otlptrace.Exporter, error) {
	options := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.TraceEndpoint)}
	if cfg.Insecure {
		options = append(options, otlptracegrpc.WithInsecure())
	}

	return otlptracegrpc.New(ctx, options...)
}

func newMetricExporter(ctx context.Context, cfg ObservabilityConfig) (*otlpmetricgrpc.Exporter, error) {
	options := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.MetricEndpoint)}
	if cfg.Insecure {
		options = append(options, otlpmetricgrpc.WithInsecure())
	}

	return otlpmetricgrpc.New(ctx, options...)
}

func newPeriodicReader(exporter sdkmetric.Exporter, interval time.Duration) *sdkmetric.PeriodicReader {
	if interval <= 0 {
		return sdkmetric.NewPeriodicReader(exporter)
	}

	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))
}
