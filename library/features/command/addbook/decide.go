package addbook

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	objectTypeBook    = "book"
	objectTypeEdition = "edition"
)

// Decide adds a book to the catalog.
//
// Business Rules:
//
//	GIVEN: An ISBN and EditionID that are not in the catalog
//	WHEN: AddBook command is received
//	THEN: BookAddedToCatalog is generated
//	ERROR: ErrInvalidISBN if the ISBN has no digits
//	ERROR: ErrInvalidOpenLibraryID if the edition, work or an author id lacks the "OL" prefix
//	ERROR: ObjectExistsError if the ISBN is in the catalog with another edition, or the edition with another ISBN
//	IDEMPOTENCY: If the ISBN is in the catalog with the same edition, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	book := command.Book

	refuse := func(err error) core.DecisionResult {
		return core.ErrorDecision(core.BuildCatalogChangeRefused(book.ISBN, "", err.Error(), command.OccurredAt), err)
	}

	if err := validate(book); err != nil {
		return refuse(err)
	}

	c := core.ProjectCirculation(history)

	if existing, ok := c.Book(book.ISBN); ok {
		if existing.EditionID == book.EditionID {
			return core.IdempotentDecision()
		}

		return refuse(core.ObjectExistsError{ID: book.ISBN, Type: objectTypeBook})
	}

	if _, ok := c.BookWithEdition(book.EditionID); ok {
		return refuse(core.ObjectExistsError{ID: book.EditionID, Type: objectTypeEdition})
	}

	return core.SuccessDecision(core.BuildBookAddedToCatalog(book, command.OccurredAt))
}

func validate(book core.Book) error {
	if isbn, err := core.NormalizeISBN(book.ISBN); err != nil || isbn != book.ISBN {
		return core.ErrInvalidISBN
	}

	if err := core.ValidateOpenLibraryID(book.EditionID); err != nil {
		return err
	}

	if err := core.ValidateOpenLibraryID(book.WorkID); err != nil {
		return err
	}

	for _, author := range book.Authors {
		if err := core.ValidateOpenLibraryID(author.ID); err != nil {
			return err
		}
	}

	return nil
}

// BuildEventFilter creates the filter for the catalog entries with this ISBN or this edition.
func BuildEventFilter(isbn core.ISBNString, editionID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P("ISBN", isbn)).
		OrMatching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
		).
		AndAnyPredicateOf(eventstore.P("EditionID", editionID)).
		Finalize()
}
