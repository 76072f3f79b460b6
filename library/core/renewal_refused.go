package core

import (
	"time"
)

const RenewalRefusedEventType = "RenewalRefused"

type RenewalRefused struct {
	LoanID      LoanIDString
	UserID      UserIDString
	ISBN        ISBNString
	FailureInfo string
	OccurredAt  OccurredAt
}

func BuildRenewalRefused(loan Loan, failureInfo string, occurredAt time.Time) RenewalRefused {
	return RenewalRefused{
		LoanID:      loan.LoanID,
		UserID:      loan.UserID,
		ISBN:        loan.ISBN,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e RenewalRefused) IsEventType() string {
	return RenewalRefusedEventType
}

func (e RenewalRefused) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e RenewalRefused) IsErrorEvent() bool {
	return true
}
