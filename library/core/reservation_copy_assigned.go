package core

import (
	"time"
)

const ReservationCopyAssignedEventType = "ReservationCopyAssigned"

// ReservationCopyAssigned holds a copy for a reservation. The reservation is ready since OccurredAt.
type ReservationCopyAssigned struct {
	ReservationID ReservationIDString
	UserID        UserIDString
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	OccurredAt    OccurredAt
}

func BuildReservationCopyAssigned(reservation Reservation, accessionCode AccessionCodeString, occurredAt time.Time) ReservationCopyAssigned {
	return ReservationCopyAssigned{
		ReservationID: reservation.ReservationID,
		UserID:        reservation.UserID,
		ISBN:          reservation.ISBN,
		AccessionCode: accessionCode,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationCopyAssigned) IsEventType() string {
	return ReservationCopyAssignedEventType
}

func (e ReservationCopyAssigned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationCopyAssigned) IsErrorEvent() bool {
	return false
}
