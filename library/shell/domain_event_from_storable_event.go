package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

var (
	ErrMappingToDomainEventFailed           = errors.New("mapping to domain event failed")
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

type decodeFunc func(payloadJSON []byte) (core.DomainEvent, error)

var decoders = map[string]decodeFunc{
	core.UserRegisteredEventType:                 decode[core.UserRegistered],
	core.UserPolicyChangedEventType:              decode[core.UserPolicyChanged],
	core.UserChangeRefusedEventType:              decode[core.UserChangeRefused],
	core.BookAddedToCatalogEventType:             decode[core.BookAddedToCatalog],
	core.BookFeatureChangedEventType:             decode[core.BookFeatureChanged],
	core.BookRemovedFromCatalogEventType:         decode[core.BookRemovedFromCatalog],
	core.BookCopyAddedToCirculationEventType:     decode[core.BookCopyAddedToCirculation],
	core.BookCopyRemovedFromCirculationEventType: decode[core.BookCopyRemovedFromCirculation],
	core.CatalogChangeRefusedEventType:           decode[core.CatalogChangeRefused],
	core.LoanStartedEventType:                    decode[core.LoanStarted],
	core.LoanRenewedEventType:                    decode[core.LoanRenewed],
	core.LoanClosedEventType:                     decode[core.LoanClosed],
	core.LoanRefusedEventType:                    decode[core.LoanRefused],
	core.RenewalRefusedEventType:                 decode[core.RenewalRefused],
	core.ReservationPlacedEventType:              decode[core.ReservationPlaced],
	core.ReservationCopyAssignedEventType:        decode[core.ReservationCopyAssigned],
	core.ReservationMarkedOffShelvesEventType:    decode[core.ReservationMarkedOffShelves],
	core.ReservationCancelledEventType:           decode[core.ReservationCancelled],
	core.ReservationTurnedIntoLoanEventType:      decode[core.ReservationTurnedIntoLoan],
	core.ReservationRefusedEventType:             decode[core.ReservationRefused],
}

// DomainEventsFrom converts StorableEvents in order.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to the DomainEvent its EventType names.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	decoder, ok := decoders[storableEvent.EventType]
	if !ok {
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
	}

	return decoder(storableEvent.PayloadJSON)
}

func decode[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	event := new(E)

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(payloadJSON, event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *event, nil
}
