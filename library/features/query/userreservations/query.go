package userreservations

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	queryType = "UserReservations"
)

type Query struct {
	UserID core.UserIDString
	Today  time.Time
}

func BuildQuery(userID core.UserIDString, today time.Time) Query {
	return Query{
		UserID: userID,
		Today:  today,
	}
}

func (q Query) QueryType() string {
	return queryType
}

// ReservationInfo describes one reservation. The collection fields are zero while it is pending.
type ReservationInfo struct {
	ReservationID core.ReservationIDString
	ISBN          core.ISBNString
	Title         string
	AccessionCode core.AccessionCodeString
	PlacedAt      time.Time
	ReadySince    *time.Time
	Expiry        *time.Time
	DaysToCollect int
	Expired       bool
	OffShelves    bool
}

type UserReservations struct {
	UserID         core.UserIDString
	Ready          []ReservationInfo
	Pending        []ReservationInfo
	SequenceNumber uint
}

func (r UserReservations) GetSequenceNumber() uint {
	return r.SequenceNumber
}
