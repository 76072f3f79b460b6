package userloans

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	queryType = "UserLoans"
)

// Query asks for the loans of UserID. Today decides which loans are overdue.
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

type LoanInfo struct {
	LoanID        core.LoanIDString
	ISBN          core.ISBNString
	Title         string
	Authors       string
	AccessionCode core.AccessionCodeString
	LoanDate      time.Time
	RenewalDate   time.Time
	Renewals      int
	DueDate       time.Time
	Overdue       bool
}

type UserLoans struct {
	UserID         core.UserIDString
	Loans          []LoanInfo
	Count          int
	OverdueCount   int
	SequenceNumber uint
}

func (r UserLoans) GetSequenceNumber() uint {
	return r.SequenceNumber
}
