package addbookcopy

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const objectTypeCopy = "copy"

// Decide adds a copy to circulation.
//
// Business Rules:
//
//	GIVEN: A book in the catalog and an accession code that was never used
//	WHEN: AddBookCopy command is received
//	THEN: BookCopyAddedToCirculation is generated
//	ERROR: ErrInvalidAccessionCode if the code is not a positive integer
//	ERROR: ErrBookNotInCatalog if the book is not in the catalog
//	ERROR: ObjectExistsError if the code was used for another book or the copy was removed
//	IDEMPOTENCY: If the copy is already in circulation for this book, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	refuse := func(err error) core.DecisionResult {
		event := core.BuildCatalogChangeRefused(command.ISBN, command.AccessionCode, err.Error(), command.OccurredAt)
		return core.ErrorDecision(event, err)
	}

	if code, err := core.NormalizeAccessionCode(command.AccessionCode); err != nil || code != command.AccessionCode {
		return refuse(core.ErrInvalidAccessionCode)
	}

	c := core.ProjectCirculation(history)

	if _, ok := c.Book(command.ISBN); !ok {
		return refuse(core.ErrBookNotInCatalog)
	}

	if c.AccessionCodeUsed(command.AccessionCode) {
		if bookCopy, inCirculation := c.Copy(command.AccessionCode); inCirculation && bookCopy.ISBN == command.ISBN {
			return core.IdempotentDecision()
		}

		return refuse(core.ObjectExistsError{ID: command.AccessionCode, Type: objectTypeCopy})
	}

	return core.SuccessDecision(core.BuildBookCopyAddedToCirculation(command.ISBN, command.AccessionCode, command.OccurredAt))
}

// BuildEventFilter creates the filter for the catalog entry of the book and every use of the accession code.
func BuildEventFilter(isbn core.ISBNString, accessionCode core.AccessionCodeString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P("ISBN", isbn)).
		OrMatching().
		AnyEventTypeOf(
			core.BookCopyAddedToCirculationEventType,
			core.BookCopyRemovedFromCirculationEventType,
		).
		AndAnyPredicateOf(eventstore.P("AccessionCode", accessionCode)).
		Finalize()
}
