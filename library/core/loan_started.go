package core

import (
	"time"
)

const LoanStartedEventType = "LoanStarted"

// LoanStarted lends a copy to a user. LoanLengthDays snapshots the borrower's policy so the due
// date can be derived without the user's history.
type LoanStarted struct {
	LoanID         LoanIDString
	UserID         UserIDString
	ISBN           ISBNString
	AccessionCode  AccessionCodeString
	LoanLengthDays int
	OccurredAt     OccurredAt
}

func BuildLoanStarted(
	loanID LoanIDString,
	userID UserIDString,
	isbn ISBNString,
	accessionCode AccessionCodeString,
	loanLengthDays int,
	occurredAt time.Time,
) LoanStarted {

	return LoanStarted{
		LoanID:         loanID,
		UserID:         userID,
		ISBN:           isbn,
		AccessionCode:  accessionCode,
		LoanLengthDays: loanLengthDays,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e LoanStarted) IsEventType() string {
	return LoanStartedEventType
}

func (e LoanStarted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanStarted) IsErrorEvent() bool {
	return false
}
