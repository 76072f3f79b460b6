package core

import (
	"fmt"
)

const (
	DefaultLoansAllowed   = 3
	DefaultLoanLengthDays = 7
	DefaultRenewalLimit   = 3

	// CollectionWindowDays is how long a ready reservation waits for collection.
	CollectionWindowDays = 7
)

// UserPolicy holds the per-user lending limits.
type UserPolicy struct {
	LoansAllowed   int
	LoanLengthDays int
	RenewalLimit   int
}

func DefaultUserPolicy() UserPolicy {
	return UserPolicy{
		LoansAllowed:   DefaultLoansAllowed,
		LoanLengthDays: DefaultLoanLengthDays,
		RenewalLimit:   DefaultRenewalLimit,
	}
}

// Validate returns ErrInvalidPolicy for negative limits or a loan length below one day.
func (p UserPolicy) Validate() error {
	if p.LoansAllowed < 0 || p.RenewalLimit < 0 || p.LoanLengthDays < 1 {
		return fmt.Errorf("%w: loans allowed %d, loan length %d days, renewal limit %d",
			ErrInvalidPolicy, p.LoansAllowed, p.LoanLengthDays, p.RenewalLimit)
	}

	return nil
}
