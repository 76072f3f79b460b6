package loanhistory

import (
	"slices"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Project lists closed loans, the most recently returned first.
//
// Query Logic:
//
//	GIVEN: A user with UserID, or no user for the whole library
//	WHEN: LoanHistory query is executed
//	THEN: one entry per closed loan is returned with its original loan date and duration in days
//	EXCLUDES: active loans
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) LoanHistory {
	c := core.ProjectCirculation(history)

	entries := make([]Entry, 0)
	for _, record := range c.History() {
		if query.UserID != "" && record.UserID != query.UserID {
			continue
		}

		book, _ := c.Book(record.ISBN)

		entries = append(entries, Entry{
			LoanID:        record.LoanID,
			UserID:        record.UserID,
			ISBN:          record.ISBN,
			Title:         book.Title,
			AccessionCode: record.AccessionCode,
			LoanDate:      record.LoanDate,
			ReturnedDate:  record.ReturnedDate,
			DurationDays:  record.DurationDays(),
		})
	}

	slices.Reverse(entries)

	return LoanHistory{
		UserID:         query.UserID,
		Entries:        entries,
		Count:          len(entries),
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter selects the closed loans of the user, or all of them, plus the catalog for titles.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	if userID == "" {
		return eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf(
				core.LoanClosedEventType,
				core.BookAddedToCatalogEventType,
			).
			Finalize()
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanClosedEventType).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		OrMatching().
		AnyEventTypeOf(core.BookAddedToCatalogEventType).
		Finalize()
}
