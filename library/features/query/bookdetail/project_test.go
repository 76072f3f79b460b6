package bookdetail_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookdetail"
)

const (
	isbn      = "9780141439518"
	otherISBN = "9780199535521"
	workID    = "OL66554W"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Project_ShowsCopiesAndWaitingList(t *testing.T) {
	// arrange
	pending := core.Reservation{ReservationID: "res-2", UserID: "user-2", ISBN: isbn}
	history := core.DomainEvents{
		givenBook(isbn, "OL1M", -10),
		core.BuildBookCopyAddedToCirculation(isbn, "1", now.AddDate(0, 0, -9)),
		core.BuildBookCopyAddedToCirculation(isbn, "2", now.AddDate(0, 0, -9)),
		core.BuildLoanStarted("loan-1", "user-1", isbn, "1", 14, now.AddDate(0, 0, -2)),
		core.BuildReservationPlaced(pending.ReservationID, pending.UserID, isbn, now.AddDate(0, 0, -1)),
		core.BuildReservationCopyAssigned(pending, "2", now.AddDate(0, 0, -1)),
		core.BuildReservationPlaced("res-3", "user-3", isbn, now),
	}

	// act
	result, err := bookdetail.Project(history, bookdetail.BuildQuery(isbn), 7)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Available)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Waiting)
	assert.Equal(t, []bookdetail.CopyInfo{
		{AccessionCode: "1", Status: "on_loan"},
		{AccessionCode: "2", Status: "reserved_held"},
	}, result.Copies)
	require.NotNil(t, result.NextAvailableDate)
	assert.Equal(t, "Jane Austen", result.Authors)
}

func Test_Project_ListsOtherEditionsOfTheSameWork(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook(isbn, "OL1M", -10),
		givenBook(otherISBN, "OL2M", -5),
		core.BuildBookAddedToCatalog(core.Book{ISBN: "9780140449136", EditionID: "OL3M", WorkID: "OL1W", Title: "Other work"}, now),
	}

	// act
	result, err := bookdetail.Project(history, bookdetail.BuildQuery(isbn), 3)

	// assert
	require.NoError(t, err)
	require.Len(t, result.OtherEditions, 1)
	assert.Equal(t, otherISBN, result.OtherEditions[0].ISBN)
	assert.Nil(t, result.NextAvailableDate)
}

func Test_Project_Fails_WhenBookIsNotInCatalog(t *testing.T) {
	// arrange
	book := core.Book{ISBN: isbn, EditionID: "OL1M"}
	history := core.DomainEvents{
		core.BuildBookAddedToCatalog(book, now.AddDate(0, 0, -2)),
		core.BuildBookRemovedFromCatalog(book, now),
	}

	// act
	_, err := bookdetail.Project(history, bookdetail.BuildQuery(isbn), 2)

	// assert
	assert.ErrorIs(t, err, core.ErrBookNotInCatalog)
}

func givenBook(isbn core.ISBNString, editionID string, daysAgo int) core.DomainEvent {
	book := core.Book{
		ISBN:      isbn,
		EditionID: editionID,
		WorkID:    workID,
		Title:     "Emma",
		Authors:   []core.Author{{ID: "OL21594A", Name: "Jane Austen"}},
	}

	return core.BuildBookAddedToCatalog(book, now.AddDate(0, 0, daysAgo))
}
