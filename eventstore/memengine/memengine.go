package memengine

import (
	"context"
	"errors"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

// ErrDecodingPayloadFailed is returned when an appended payload is not a JSON object.
var ErrDecodingPayloadFailed = errors.New("decoding payload for predicate matching failed")

type storedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	payload        map[string]any
}

// EventStore keeps events in process memory. Append holds a write lock across the
// sequence check and the insert, which gives the same conflict semantics as the SQL engines.
type EventStore struct {
	mu     *sync.RWMutex
	events *[]storedEvent
	logger eventstore.Logger
}

// Option configures an EventStore.
type Option func(*EventStore)

// WithLogger sets a logger that receives info level operation logs.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

// NewEventStore creates an empty in-memory EventStore.
func NewEventStore(options ...Option) EventStore {
	es := EventStore{
		mu:     &sync.RWMutex{},
		events: &[]storedEvent{},
	}

	for _, option := range options {
		option(&es)
	}

	return es
}

// Query returns the events matching filter in sequence order and the highest matching sequence number.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range *es.events {
		if !matches(filter, stored) {
			continue
		}

		result = append(result, stored.event)
		maxSequenceNumber = stored.sequenceNumber
	}

	if es.logger != nil {
		es.logger.Info(logMsgQueryCompleted, logAttrEventCount, len(result))
	}

	return result, maxSequenceNumber, nil
}

// Append stores all events atomically if the boundary described by filter is still at expectedMaxSequenceNumber.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)
	decoded := make([]map[string]any, len(allEvents))

	for i, e := range allEvents {
		payload := make(map[string]any)
		if err := jsoniter.ConfigFastest.Unmarshal(e.PayloadJSON, &payload); err != nil {
			return errors.Join(eventstore.ErrAppendingEventFailed, ErrDecodingPayloadFailed, err)
		}
		decoded[i] = payload
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actualMaxSequenceNumber := eventstore.MaxSequenceNumberUint(0)
	for _, stored := range *es.events {
		if matches(filter, stored) {
			actualMaxSequenceNumber = stored.sequenceNumber
		}
	}

	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		if es.logger != nil {
			es.logger.Info(
				logMsgConcurrencyConflict,
				logAttrExpectedSequence, expectedMaxSequenceNumber,
				logAttrActualSequence, actualMaxSequenceNumber,
			)
		}

		return eventstore.ErrConcurrencyConflict
	}

	next := eventstore.MaxSequenceNumberUint(len(*es.events))
	for i, e := range allEvents {
		next++
		*es.events = append(*es.events, storedEvent{
			sequenceNumber: next,
			event:          e,
			payload:        decoded[i],
		})
	}

	if es.logger != nil {
		es.logger.Info(logMsgEventsAppended, logAttrEventCount, len(allEvents))
	}

	return nil
}

// Len returns the total number of stored events.
func (es EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(*es.events)
}

func matches(filter eventstore.Filter, stored storedEvent) bool {
	if filter.IsEmpty() {
		return true
	}

	for _, item := range filter.Items() {
		if matchesItem(item, stored) {
			return true
		}
	}

	return false
}

func matchesItem(item eventstore.FilterItem, stored storedEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), stored.event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	for _, predicate := range item.Predicates() {
		value, ok := stored.payload[predicate.Key()].(string)
		hit := ok && value == predicate.Val()

		if item.AllPredicatesMustMatch() && !hit {
			return false
		}

		if !item.AllPredicatesMustMatch() && hit {
			return true
		}
	}

	return item.AllPredicatesMustMatch()
}
