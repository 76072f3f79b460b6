package core

import (
	"time"
)

const LoanRenewedEventType = "LoanRenewed"

// LoanRenewed restarts the loan period. Forced renewals went past the renewal limit.
type LoanRenewed struct {
	LoanID         LoanIDString
	UserID         UserIDString
	ISBN           ISBNString
	AccessionCode  AccessionCodeString
	Renewals       int
	LoanLengthDays int
	Forced         bool
	OccurredAt     OccurredAt
}

func BuildLoanRenewed(loan Loan, renewals int, loanLengthDays int, forced bool, occurredAt time.Time) LoanRenewed {
	return LoanRenewed{
		LoanID:         loan.LoanID,
		UserID:         loan.UserID,
		ISBN:           loan.ISBN,
		AccessionCode:  loan.AccessionCode,
		Renewals:       renewals,
		LoanLengthDays: loanLengthDays,
		Forced:         forced,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e LoanRenewed) IsEventType() string {
	return LoanRenewedEventType
}

func (e LoanRenewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanRenewed) IsErrorEvent() bool {
	return false
}
