// Package config loads the lmsctl configuration and builds the infrastructure it names:
// database connections for the event store engines, the notifier's Redis client,
// the process logger and the OpenTelemetry providers.
package config
