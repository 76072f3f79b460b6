package core

import (
	"time"
)

const ReservationCancelledEventType = "ReservationCancelled"

// ReservationCancelled deletes a reservation. AccessionCode is set if it held a copy.
type ReservationCancelled struct {
	ReservationID ReservationIDString
	UserID        UserIDString
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	OccurredAt    OccurredAt
}

func BuildReservationCancelled(reservation Reservation, occurredAt time.Time) ReservationCancelled {
	return ReservationCancelled{
		ReservationID: reservation.ReservationID,
		UserID:        reservation.UserID,
		ISBN:          reservation.ISBN,
		AccessionCode: reservation.AccessionCode,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationCancelled) IsEventType() string {
	return ReservationCancelledEventType
}

func (e ReservationCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationCancelled) IsErrorEvent() bool {
	return false
}
