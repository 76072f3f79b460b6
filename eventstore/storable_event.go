package eventstore

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrInvalidPayloadJSON is returned when the payload is not a valid JSON document.
	ErrInvalidPayloadJSON = errors.New("payload json is not valid")

	// ErrInvalidMetadataJSON is returned when the metadata is not a valid JSON document.
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

	// ErrEmptyEventType is returned when a StorableEvent is built without an event type.
	ErrEmptyEventType = errors.New("event type must not be empty")
)

// StorableEvents is a slice of StorableEvent.
type StorableEvents = []StorableEvent

// StorableEvent is the engine-agnostic DTO the stores append and return.
//
// It only carries scalars and raw JSON so the stores never need to know the client's domain events.
// Construct it with BuildStorableEvent or BuildStorableEventWithEmptyMetadata.
type StorableEvent struct {
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// BuildStorableEvent validates the JSON parts and builds a StorableEvent.
func BuildStorableEvent(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (StorableEvent, error) {
	if eventType == "" {
		return StorableEvent{}, ErrEmptyEventType
	}

	if !json.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	if !json.Valid(metadataJSON) {
		return StorableEvent{}, ErrInvalidMetadataJSON
	}

	return StorableEvent{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildStorableEventWithEmptyMetadata builds a StorableEvent with "{}" as metadata.
func BuildStorableEventWithEmptyMetadata(eventType string, occurredAt time.Time, payloadJSON []byte) (StorableEvent, error) {
	return BuildStorableEvent(eventType, occurredAt, payloadJSON, []byte("{}"))
}
