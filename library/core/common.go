package core

import (
	"time"
)

// Alias types instead of full value objects.

type ISBNString = string
type UserIDString = string
type AccessionCodeString = string
type LoanIDString = string
type ReservationIDString = string
type EventTypeString = string

// OccurredAt is the time an event happened.
type OccurredAt = time.Time

// ToOccurredAt normalizes t to UTC with microsecond precision, which is what Postgres stores.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// Day returns the calendar day of t as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from the day of from to the day of to.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}
