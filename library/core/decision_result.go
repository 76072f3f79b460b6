package core

// DecisionResult is the outcome of a Decide function.
//
// Construct it only with IdempotentDecision, SuccessDecision or ErrorDecision.
type DecisionResult struct {
	Outcome string
	Events  DomainEvents // empty for idempotent decisions
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision means nothing has to change.
func IdempotentDecision() DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
	}
}

// SuccessDecision carries the events to append atomically, in order.
func SuccessDecision(event DomainEvent, additionalEvents ...DomainEvent) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Events:  append(DomainEvents{event}, additionalEvents...),
	}
}

// ErrorDecision carries a refusal event to record and the business error to return.
func ErrorDecision(event DomainEvent, err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Events:  DomainEvents{event},
		Err:     err,
	}
}

func (r DecisionResult) HasEventToAppend() bool {
	return r.Outcome != idempotentOutcome && len(r.Events) > 0
}

// HasError returns the business error of an error decision, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}

// IsIdempotent is true for decisions without events.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}
