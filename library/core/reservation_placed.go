package core

import (
	"time"
)

const ReservationPlacedEventType = "ReservationPlaced"

// ReservationPlaced queues a user for a title. The queue order is the event order.
type ReservationPlaced struct {
	ReservationID ReservationIDString
	UserID        UserIDString
	ISBN          ISBNString
	OccurredAt    OccurredAt
}

func BuildReservationPlaced(reservationID ReservationIDString, userID UserIDString, isbn ISBNString, occurredAt time.Time) ReservationPlaced {
	return ReservationPlaced{
		ReservationID: reservationID,
		UserID:        userID,
		ISBN:          isbn,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationPlaced) IsEventType() string {
	return ReservationPlacedEventType
}

func (e ReservationPlaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationPlaced) IsErrorEvent() bool {
	return false
}
