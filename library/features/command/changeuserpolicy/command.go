package changeuserpolicy

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "ChangeUserPolicy"
)

type Command struct {
	UserID     core.UserIDString
	Policy     core.UserPolicy
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(userID core.UserIDString, policy core.UserPolicy, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		Policy:     policy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
