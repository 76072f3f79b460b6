package expiredreservations

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	queryType = "ExpiredReservations"
)

type Query struct {
	Today time.Time
}

func BuildQuery(today time.Time) Query {
	return Query{
		Today: today,
	}
}

func (q Query) QueryType() string {
	return queryType
}

type ExpiredReservation struct {
	ReservationID core.ReservationIDString
	UserID        core.UserIDString
	ISBN          core.ISBNString
	Title         string
	AccessionCode core.AccessionCodeString
	ReadySince    time.Time
	Expiry        time.Time
	OffShelves    bool
}

type ExpiredReservations struct {
	Reservations   []ExpiredReservation
	Count          int
	SequenceNumber uint
}

func (r ExpiredReservations) GetSequenceNumber() uint {
	return r.SequenceNumber
}
