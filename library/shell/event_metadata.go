package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

type MessageID = string
type CausationID = string
type CorrelationID = string

// EventMetadata is stored next to every event payload.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
}

func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// EventMetadataForCommand builds the metadata of one event out of the batch a command appends.
// All events of the batch share the command's correlation id and are caused by it.
func EventMetadataForCommand(commandID uuid.UUID) EventMetadata {
	return BuildEventMetadata(uuid.New(), commandID, commandID)
}

func EventMetadataFrom(storableEvent eventstore.StorableEvent) (EventMetadata, error) {
	metadata := new(EventMetadata)
	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
