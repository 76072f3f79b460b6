package core

import (
	"time"
)

const UserRegisteredEventType = "UserRegistered"

// UserRegistered is recorded once per user with the policy the user starts with.
type UserRegistered struct {
	UserID         UserIDString
	Name           string
	Email          string
	LoansAllowed   int
	LoanLengthDays int
	RenewalLimit   int
	OccurredAt     OccurredAt
}

func BuildUserRegistered(userID UserIDString, name string, email string, policy UserPolicy, occurredAt time.Time) UserRegistered {
	return UserRegistered{
		UserID:         userID,
		Name:           name,
		Email:          email,
		LoansAllowed:   policy.LoansAllowed,
		LoanLengthDays: policy.LoanLengthDays,
		RenewalLimit:   policy.RenewalLimit,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e UserRegistered) IsEventType() string {
	return UserRegisteredEventType
}

func (e UserRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e UserRegistered) IsErrorEvent() bool {
	return false
}

func (e UserRegistered) Policy() UserPolicy {
	return UserPolicy{LoansAllowed: e.LoansAllowed, LoanLengthDays: e.LoanLengthDays, RenewalLimit: e.RenewalLimit}
}
