package registeruser

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const objectTypeUser = "user"

// Decide registers a user.
//
// Business Rules:
//
//	GIVEN: A UserID that is not registered yet
//	WHEN: RegisterUser command is received
//	THEN: UserRegistered is generated
//	ERROR: ErrInvalidPolicy if the policy has negative limits or a loan length below one day
//	ERROR: ObjectExistsError if the UserID is registered with a different name, email or policy
//	IDEMPOTENCY: If the user is registered with exactly this data, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	refuse := func(err error) core.DecisionResult {
		return core.ErrorDecision(core.BuildUserChangeRefused(command.UserID, err.Error(), command.OccurredAt), err)
	}

	if err := command.Policy.Validate(); err != nil {
		return refuse(err)
	}

	c := core.ProjectCirculation(history)

	if user, ok := c.User(command.UserID); ok {
		if user.Name == command.Name && user.Email == command.Email && user.Policy == command.Policy {
			return core.IdempotentDecision()
		}

		return refuse(core.ObjectExistsError{ID: command.UserID, Type: objectTypeUser})
	}

	return core.SuccessDecision(
		core.BuildUserRegistered(command.UserID, command.Name, command.Email, command.Policy, command.OccurredAt),
	)
}

func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.UserRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
