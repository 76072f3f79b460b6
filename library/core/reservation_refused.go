package core

import (
	"time"
)

const ReservationRefusedEventType = "ReservationRefused"

// ReservationRefused records a failed reservation placement, assignment or collection.
type ReservationRefused struct {
	ReservationID ReservationIDString
	UserID        UserIDString
	ISBN          ISBNString
	FailureInfo   string
	OccurredAt    OccurredAt
}

func BuildReservationRefused(
	reservationID ReservationIDString,
	userID UserIDString,
	isbn ISBNString,
	failureInfo string,
	occurredAt time.Time,
) ReservationRefused {

	return ReservationRefused{
		ReservationID: reservationID,
		UserID:        userID,
		ISBN:          isbn,
		FailureInfo:   failureInfo,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationRefused) IsEventType() string {
	return ReservationRefusedEventType
}

func (e ReservationRefused) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationRefused) IsErrorEvent() bool {
	return true
}
