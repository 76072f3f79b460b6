package featurebook

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide sets the featured flag of a book.
//
// Business Rules:
//
//	GIVEN: A book in the catalog
//	WHEN: FeatureBook command is received
//	THEN: BookFeatureChanged is generated
//	ERROR: ErrBookNotInCatalog if the book is not in the catalog
//	IDEMPOTENCY: If the flag already has the requested value, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	book, ok := core.ProjectCirculation(history).Book(command.ISBN)
	if !ok {
		event := core.BuildCatalogChangeRefused(command.ISBN, "", core.ErrBookNotInCatalog.Error(), command.OccurredAt)
		return core.ErrorDecision(event, core.ErrBookNotInCatalog)
	}

	if book.Featured == command.Featured {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildBookFeatureChanged(command.ISBN, command.Featured, command.OccurredAt))
}

func BuildEventFilter(isbn core.ISBNString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookFeatureChangedEventType,
			core.BookRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P("ISBN", isbn)).
		Finalize()
}
