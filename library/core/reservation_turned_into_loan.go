package core

import (
	"time"
)

const ReservationTurnedIntoLoanEventType = "ReservationTurnedIntoLoan"

// ReservationTurnedIntoLoan consumes a ready reservation. It is always appended together with the LoanStarted.
type ReservationTurnedIntoLoan struct {
	ReservationID ReservationIDString
	UserID        UserIDString
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	LoanID        LoanIDString
	OccurredAt    OccurredAt
}

func BuildReservationTurnedIntoLoan(reservation Reservation, loanID LoanIDString, occurredAt time.Time) ReservationTurnedIntoLoan {
	return ReservationTurnedIntoLoan{
		ReservationID: reservation.ReservationID,
		UserID:        reservation.UserID,
		ISBN:          reservation.ISBN,
		AccessionCode: reservation.AccessionCode,
		LoanID:        loanID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e ReservationTurnedIntoLoan) IsEventType() string {
	return ReservationTurnedIntoLoanEventType
}

func (e ReservationTurnedIntoLoan) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ReservationTurnedIntoLoan) IsErrorEvent() bool {
	return false
}
