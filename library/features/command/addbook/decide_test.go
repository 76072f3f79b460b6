package addbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addbook"
)

const isbn = "9780141439518"

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Decide_Success_NormalizesISBN(t *testing.T) {
	// arrange
	book := givenEmma()
	book.ISBN = "978-0-14-143951-8"

	// act
	result := addbook.Decide(core.DomainEvents{}, addbook.BuildCommand(book, now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	added, ok := result.Events[0].(core.BookAddedToCatalog)
	require.True(t, ok)
	assert.Equal(t, isbn, added.ISBN)
	assert.Equal(t, "OL7353617M", added.EditionID)
	assert.Equal(t, "1996-01-01", added.PublishedOn)
}

func Test_Decide_Idempotent_WhenSameEditionIsInCatalog(t *testing.T) {
	// arrange
	history := core.DomainEvents{core.BuildBookAddedToCatalog(givenEmma(), now.Add(-time.Hour))}

	// act
	result := addbook.Decide(history, addbook.BuildCommand(givenEmma(), now))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Success_WhenReaddedAfterRemoval(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		core.BuildBookAddedToCatalog(givenEmma(), now.Add(-2*time.Hour)),
		core.BuildBookRemovedFromCatalog(givenEmma(), now.Add(-time.Hour)),
	}

	// act
	result := addbook.Decide(history, addbook.BuildCommand(givenEmma(), now))

	// assert
	require.NoError(t, result.HasError())
	assert.Len(t, result.Events, 1)
}

func Test_Decide_Error(t *testing.T) {
	otherEdition := givenEmma()
	otherEdition.EditionID = "OL9999999M"

	otherISBN := givenEmma()
	otherISBN.ISBN = "9780199535521"

	noDigits := givenEmma()
	noDigits.ISBN = "n/a"

	badWork := givenEmma()
	badWork.WorkID = "66554W"

	badAuthor := givenEmma()
	badAuthor.Authors = []core.Author{{ID: "21594", Name: "Jane Austen"}}

	inCatalog := core.DomainEvents{core.BuildBookAddedToCatalog(givenEmma(), now.Add(-time.Hour))}

	testCases := []struct {
		name          string
		history       core.DomainEvents
		book          core.Book
		expectedError error
	}{
		{name: "isbn taken by another edition", history: inCatalog, book: otherEdition, expectedError: core.ErrObjectExists},
		{name: "edition taken by another isbn", history: inCatalog, book: otherISBN, expectedError: core.ErrObjectExists},
		{name: "isbn without digits", history: core.DomainEvents{}, book: noDigits, expectedError: core.ErrInvalidISBN},
		{name: "work id without prefix", history: core.DomainEvents{}, book: badWork, expectedError: core.ErrInvalidOpenLibraryID},
		{name: "author id without prefix", history: core.DomainEvents{}, book: badAuthor, expectedError: core.ErrInvalidOpenLibraryID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := addbook.Decide(tc.history, addbook.BuildCommand(tc.book, now))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
			require.Len(t, result.Events, 1)
			assert.IsType(t, core.CatalogChangeRefused{}, result.Events[0])
		})
	}
}

func givenEmma() core.Book {
	publishedOn := time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC)

	return core.Book{
		ISBN:        isbn,
		EditionID:   "OL7353617M",
		WorkID:      "OL66554W",
		Title:       "Emma",
		Authors:     []core.Author{{ID: "OL21594A", Name: "Jane Austen"}},
		PublishedOn: &publishedOn,
	}
}
