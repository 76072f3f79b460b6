// Package eventstore holds the engine-agnostic pieces of the event store:
// the Filter builder, StorableEvent, consistency hints, shared errors and
// the observability interfaces the engines report to.
//
// A command handler reads one dynamic event stream, decides, and appends
// guarded by the max sequence number it saw:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.LoanStartedEventType, core.LoanClosedEventType).
//		AndAnyPredicateOf(eventstore.P("ISBN", isbn)).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	// ... decide ...
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
//		// somebody else wrote into the same boundary: query again
//	}
//
// Engines live in the sub packages postgresengine, sqliteengine and memengine.
package eventstore
