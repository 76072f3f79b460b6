package registeruser

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "RegisterUser"
)

type Command struct {
	UserID     core.UserIDString
	Name       string
	Email      string
	Policy     core.UserPolicy
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(userID core.UserIDString, name, email string, policy core.UserPolicy, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		Name:       name,
		Email:      email,
		Policy:     policy,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
