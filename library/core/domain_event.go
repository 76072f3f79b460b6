package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent is a business fact that happened in the library.
type DomainEvent interface {
	IsEventType() string
	HasOccurredAt() time.Time

	// IsErrorEvent is true for refusals, which are recorded but never change state.
	IsErrorEvent() bool
}
