package loanhistory

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	queryType = "LoanHistory"
)

// Query asks for the closed loans of UserID, or of all users if UserID is empty.
type Query struct {
	UserID core.UserIDString
}

func BuildQuery(userID core.UserIDString) Query {
	return Query{
		UserID: userID,
	}
}

func (q Query) QueryType() string {
	return queryType
}

type Entry struct {
	LoanID        core.LoanIDString
	UserID        core.UserIDString
	ISBN          core.ISBNString
	Title         string
	AccessionCode core.AccessionCodeString
	LoanDate      time.Time
	ReturnedDate  time.Time
	DurationDays  int
}

type LoanHistory struct {
	UserID         core.UserIDString
	Entries        []Entry
	Count          int
	SequenceNumber uint
}

func (r LoanHistory) GetSequenceNumber() uint {
	return r.SequenceNumber
}
