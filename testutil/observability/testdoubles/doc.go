// Package testdoubles provides spies for the observability interfaces of the event store and the shell:
//   - MetricsCollectorSpy captures durations, counters and values
//   - TracingCollectorSpy captures spans with their start and finish attributes
//   - LoggerSpy captures plain and contextual log calls
package testdoubles
