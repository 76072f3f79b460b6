package core

import (
	"time"
)

const UserPolicyChangedEventType = "UserPolicyChanged"

// UserPolicyChanged replaces the whole policy of a user.
type UserPolicyChanged struct {
	UserID         UserIDString
	LoansAllowed   int
	LoanLengthDays int
	RenewalLimit   int
	OccurredAt     OccurredAt
}

func BuildUserPolicyChanged(userID UserIDString, policy UserPolicy, occurredAt time.Time) UserPolicyChanged {
	return UserPolicyChanged{
		UserID:         userID,
		LoansAllowed:   policy.LoansAllowed,
		LoanLengthDays: policy.LoanLengthDays,
		RenewalLimit:   policy.RenewalLimit,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e UserPolicyChanged) IsEventType() string {
	return UserPolicyChangedEventType
}

func (e UserPolicyChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e UserPolicyChanged) IsErrorEvent() bool {
	return false
}

func (e UserPolicyChanged) Policy() UserPolicy {
	return UserPolicy{LoansAllowed: e.LoansAllowed, LoanLengthDays: e.LoanLengthDays, RenewalLimit: e.RenewalLimit}
}
