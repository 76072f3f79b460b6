package core

import (
	"time"
)

const ReservationMarkedOffShelvesEventType = "ReservationMarkedOffShelves"

// ReservationMarkedOffShelves is the staff flag for a copy that was taken off the shelves.
type ReservationMarkedOffShelves struct {
	ReservationID ReservationIDString
	UserID        UserIDString
	ISBN          ISBNString
	OffShelves    bool
	OccurredAt    OccurredAt
}

func BuildReservationMarkedOffShelves(reservation Reservation, offShelves bool, occurredAt time.Time) ReservationMarkedOffShelves {
	return ReservationMarkedOffShelves{
		ReservationID: reservation.ReservationID,
		UserID:        reservation.UserID,
		ISBN:          reservation.ISBN,
		OffShelves:    offShelves,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationMarkedOffShelves) IsEventType() string {
	return ReservationMarkedOffShelvesEventType
}

func (e ReservationMarkedOffShelves) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationMarkedOffShelves) IsErrorEvent() bool {
	return false
}
