// Package shell is the imperative shell around library/core.
//
// It maps domain events to and from eventstore.StorableEvent, retries command handlers on
// concurrency conflicts, resolves the ids a consistency boundary needs, and defines the clock,
// id generator and notifier that command handlers receive from their callers.
package shell
