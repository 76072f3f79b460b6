package bookavailability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookavailability"
)

const isbn = "9780141439518"

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Project_CountsAvailableAndTotalCopies(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook(),
		givenCopy("1"),
		givenCopy("2"),
		givenCopy("3"),
		core.BuildBookCopyRemovedFromCirculation(isbn, "3", now.Add(-time.Hour)),
		core.BuildLoanStarted("loan-1", "user-1", isbn, "1", 7, now.Add(-time.Hour)),
	}

	// act
	result := bookavailability.Project(history, bookavailability.BuildQuery(isbn), 6)

	// assert
	assert.True(t, result.InCatalog)
	assert.Equal(t, "Emma", result.Title)
	assert.Equal(t, 1, result.Available)
	assert.Equal(t, 2, result.Total)
	assert.True(t, result.ReadyNow)
	assert.Nil(t, result.NextAvailableDate)
	assert.Equal(t, uint(6), result.GetSequenceNumber())
}

func Test_Project_NextAvailableDate_IsEarliestDueDate_WhenAllCopiesAreOut(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook(),
		givenCopy("1"),
		givenCopy("2"),
		core.BuildLoanStarted("loan-1", "user-1", isbn, "1", 7, now.Add(-48*time.Hour)),
		core.BuildLoanStarted("loan-2", "user-2", isbn, "2", 7, now.Add(-24*time.Hour)),
	}

	// act
	result := bookavailability.Project(history, bookavailability.BuildQuery(isbn), 5)

	// assert
	assert.False(t, result.ReadyNow)
	require.NotNil(t, result.NextAvailableDate)
	assert.Equal(t, core.Day(now.Add(-48*time.Hour)).AddDate(0, 0, 7), *result.NextAvailableDate)
}

func Test_Project_NotInCatalog(t *testing.T) {
	// act
	result := bookavailability.Project(core.DomainEvents{}, bookavailability.BuildQuery(isbn), 0)

	// assert
	assert.False(t, result.InCatalog)
	assert.Zero(t, result.Total)
	assert.Nil(t, result.NextAvailableDate)
}

func givenBook() core.DomainEvent {
	return core.BuildBookAddedToCatalog(core.Book{ISBN: isbn, EditionID: "OL7353617M", WorkID: "OL66554W", Title: "Emma"}, now.Add(-72*time.Hour))
}

func givenCopy(code core.AccessionCodeString) core.DomainEvent {
	return core.BuildBookCopyAddedToCirculation(isbn, code, now.Add(-72*time.Hour))
}
