// Package oteladapters implements the eventstore observability interfaces on top of OpenTelemetry.
//
// The same adapters serve the event store engines and the library command/query handlers, so one
// MeterProvider/TracerProvider/LoggerProvider setup covers the whole process.
package oteladapters
