package core

import (
	"time"
)

const UserChangeRefusedEventType = "UserChangeRefused"

type UserChangeRefused struct {
	UserID      UserIDString
	FailureInfo string
	OccurredAt  OccurredAt
}

func BuildUserChangeRefused(userID UserIDString, failureInfo string, occurredAt time.Time) UserChangeRefused {
	return UserChangeRefused{
		UserID:      userID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e UserChangeRefused) IsEventType() string {
	return UserChangeRefusedEventType
}

func (e UserChangeRefused) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e UserChangeRefused) IsErrorEvent() bool {
	return true
}
