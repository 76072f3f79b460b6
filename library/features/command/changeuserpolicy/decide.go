package changeuserpolicy

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide replaces the policy of a user.
//
// Business Rules:
//
//	GIVEN: A registered user
//	WHEN: ChangeUserPolicy command is received
//	THEN: UserPolicyChanged is generated
//	ERROR: ErrUserNotRegistered if the user is unknown
//	ERROR: ErrInvalidPolicy if the policy has negative limits or a loan length below one day
//	IDEMPOTENCY: If the user already has this policy, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	refuse := func(err error) core.DecisionResult {
		return core.ErrorDecision(core.BuildUserChangeRefused(command.UserID, err.Error(), command.OccurredAt), err)
	}

	user, ok := core.ProjectCirculation(history).User(command.UserID)
	if !ok {
		return refuse(core.ErrUserNotRegistered)
	}

	if err := command.Policy.Validate(); err != nil {
		return refuse(err)
	}

	if user.Policy == command.Policy {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildUserPolicyChanged(command.UserID, command.Policy, command.OccurredAt))
}

func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.UserRegisteredEventType,
			core.UserPolicyChangedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
