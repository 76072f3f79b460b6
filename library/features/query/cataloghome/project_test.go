package cataloghome_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/cataloghome"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Project_ListsFeaturedAndNewestBooks(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook("9780000000001", "Oldest", -3),
		givenBook("9780000000002", "Middle", -2),
		givenBook("9780000000003", "Newest", -1),
		core.BuildBookFeatureChanged("9780000000001", true, now),
	}

	// act
	result := cataloghome.Project(history, cataloghome.BuildQuery(2), 4)

	// assert
	require.Len(t, result.Featured, 1)
	assert.Equal(t, "Oldest", result.Featured[0].Title)
	require.Len(t, result.Newest, 2)
	assert.Equal(t, "Newest", result.Newest[0].Title)
	assert.Equal(t, "Middle", result.Newest[1].Title)
	assert.Equal(t, uint(4), result.GetSequenceNumber())
}

func Test_Project_ExcludesRemovedAndUnfeaturedBooks(t *testing.T) {
	// arrange
	removed := core.Book{ISBN: "9780000000002", Title: "Gone", AddedAt: now.Add(-48 * time.Hour)}
	history := core.DomainEvents{
		givenBook("9780000000001", "Stays", -3),
		core.BuildBookAddedToCatalog(removed, removed.AddedAt),
		core.BuildBookFeatureChanged("9780000000001", true, now.Add(-time.Hour)),
		core.BuildBookFeatureChanged("9780000000001", false, now),
		core.BuildBookFeatureChanged(removed.ISBN, true, now),
		core.BuildBookRemovedFromCatalog(removed, now),
	}

	// act
	result := cataloghome.Project(history, cataloghome.BuildQuery(0), 6)

	// assert
	assert.Empty(t, result.Featured)
	require.Len(t, result.Newest, 1)
	assert.Equal(t, "Stays", result.Newest[0].Title)
}

func Test_Project_LimitsNewestToTen_ByDefault(t *testing.T) {
	// arrange
	history := core.DomainEvents{}
	for i := range 12 {
		history = append(history, givenBook(fmt.Sprintf("97800000000%02d", i), fmt.Sprintf("Book %d", i), i-12))
	}

	// act
	result := cataloghome.Project(history, cataloghome.BuildQuery(0), 12)

	// assert
	require.Len(t, result.Newest, cataloghome.DefaultNewestLimit)
	assert.Equal(t, "Book 11", result.Newest[0].Title)
}

func givenBook(isbn core.ISBNString, title string, daysAgo int) core.DomainEvent {
	at := now.AddDate(0, 0, daysAgo)

	return core.BuildBookAddedToCatalog(core.Book{ISBN: isbn, Title: title, AddedAt: at}, at)
}
