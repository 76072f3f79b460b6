package core

import (
	"time"
)

const LoanClosedEventType = "LoanClosed"

// LoanClosed is the return of a copy and at the same time the loan's history record.
type LoanClosed struct {
	LoanID        LoanIDString
	UserID        UserIDString
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	LoanDate      time.Time
	OccurredAt    OccurredAt
}

func BuildLoanClosed(loan Loan, occurredAt time.Time) LoanClosed {
	return LoanClosed{
		LoanID:        loan.LoanID,
		UserID:        loan.UserID,
		ISBN:          loan.ISBN,
		AccessionCode: loan.AccessionCode,
		LoanDate:      loan.LoanDate,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e LoanClosed) IsEventType() string {
	return LoanClosedEventType
}

func (e LoanClosed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e LoanClosed) IsErrorEvent() bool {
	return false
}

func (e LoanClosed) HistoryLoan() HistoryLoan {
	return HistoryLoan{
		LoanID:        e.LoanID,
		UserID:        e.UserID,
		ISBN:          e.ISBN,
		AccessionCode: e.AccessionCode,
		LoanDate:      e.LoanDate,
		ReturnedDate:  e.OccurredAt,
	}
}
