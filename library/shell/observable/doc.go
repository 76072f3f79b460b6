// Package observable decorates command and query handlers with logging, metrics and tracing.
//
// The wrappers never change what a handler decides. They classify its outcome (success,
// idempotent, error, canceled, timeout, concurrency conflict), record retry metadata and report
// notification failures that the handler swallowed.
package observable
