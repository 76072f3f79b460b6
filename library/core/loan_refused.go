package core

import (
	"time"
)

const LoanRefusedEventType = "LoanRefused"

// LoanRefused records a loan that could not be started.
type LoanRefused struct {
	LoanID        LoanIDString
	UserID        UserIDString
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	FailureInfo   string
	OccurredAt    OccurredAt
}

func BuildLoanRefused(
	loanID LoanIDString,
	userID UserIDString,
	isbn ISBNString,
	accessionCode AccessionCodeString,
	failureInfo string,
	occurredAt time.Time,
) LoanRefused {

	return LoanRefused{
		LoanID:        loanID,
		UserID:        userID,
		ISBN:          isbn,
		AccessionCode: accessionCode,
		FailureInfo:   failureInfo,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e LoanRefused) IsEventType() string {
	return LoanRefusedEventType
}

func (e LoanRefused) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanRefused) IsErrorEvent() bool {
	return true
}
