package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

var (
	ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")
	ErrMappingToStorableEventFailedForMetadata    = errors.New("mapping to storable event failed for metadata")
	ErrNoEventsToMap                              = errors.New("no events to map")
)

// StorableEventFrom serializes a DomainEvent and its metadata.
func StorableEventFrom(event core.DomainEvent, metadata EventMetadata) (eventstore.StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(metadata)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	storableEvent, err := eventstore.BuildStorableEvent(event.IsEventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}

// StorableEventsForCommand serializes the events of one decision. The first return value is
// what Append takes as its single event, the rest are the additional events.
func StorableEventsForCommand(events core.DomainEvents) (eventstore.StorableEvent, eventstore.StorableEvents, error) {
	if len(events) == 0 {
		return eventstore.StorableEvent{}, nil, ErrNoEventsToMap
	}

	commandID := uuid.New()
	storableEvents := make(eventstore.StorableEvents, 0, len(events))

	for _, event := range events {
		storableEvent, err := StorableEventFrom(event, EventMetadataForCommand(commandID))
		if err != nil {
			return eventstore.StorableEvent{}, nil, err
		}

		storableEvents = append(storableEvents, storableEvent)
	}

	return storableEvents[0], storableEvents[1:], nil
}

// StorableEventWithEmptyMetadataFrom serializes a DomainEvent with "{}" as metadata.
func StorableEventWithEmptyMetadataFrom(event core.DomainEvent) (eventstore.StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata(event.IsEventType(), event.HasOccurredAt(), payloadJSON)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}
