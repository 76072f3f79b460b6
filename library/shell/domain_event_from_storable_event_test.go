package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

func Test_DomainEventFrom_RestoresBookWithAuthorsAndPublishedOn(t *testing.T) {
	// arrange
	publishedOn := time.Date(1813, 1, 28, 0, 0, 0, 0, time.UTC)
	event := core.BuildBookAddedToCatalog(core.Book{
		ISBN:        "9780141439518",
		EditionID:   "OL7353617M",
		WorkID:      "OL66554W",
		Title:       "Pride and Prejudice",
		Authors:     []core.Author{{ID: "OL21594A", Name: "Jane Austen"}},
		PublishedOn: &publishedOn,
		Featured:    true,
	}, time.Now())

	storableEvent, err := shell.StorableEventWithEmptyMetadataFrom(event)
	require.NoError(t, err)

	// act
	domainEvent, err := shell.DomainEventFrom(storableEvent)

	// assert
	require.NoError(t, err)
	assert.Equal(t, event, domainEvent)
	assert.Equal(t, "Jane Austen", domainEvent.(core.BookAddedToCatalog).Book().AuthorsNameString())
}

func Test_DomainEventFrom_KeepsErrorEvents(t *testing.T) {
	// arrange
	event := core.BuildLoanRefused("loan-1", "user-1", "9780141439518", "3", "user already has 3 loans", time.Now())
	storableEvent, err := shell.StorableEventWithEmptyMetadataFrom(event)
	require.NoError(t, err)

	// act
	domainEvent, err := shell.DomainEventFrom(storableEvent)

	// assert
	require.NoError(t, err)
	assert.True(t, domainEvent.IsErrorEvent())
	assert.Equal(t, event, domainEvent)
}

func Test_DomainEventFrom_Fails_WhenEventTypeIsUnknown(t *testing.T) {
	// arrange
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata("BookBurned", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_DomainEventFrom_Fails_WhenPayloadDoesNotFitTheEvent(t *testing.T) {
	// arrange
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata(
		core.LoanStartedEventType,
		time.Now(),
		[]byte(`{"LoanLengthDays": "seven"}`),
	)
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
}

func Test_StorableEventsForCommand_SharesCorrelationIDAcrossTheBatch(t *testing.T) {
	// arrange
	now := time.Now()
	loan := core.Loan{LoanID: "loan-1", UserID: "user-1", ISBN: "1", AccessionCode: "7", LoanDate: now}
	closed := core.BuildLoanClosed(loan, now)
	assigned := core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-1", UserID: "user-2", ISBN: "1"}, "7", now)

	// act
	first, rest, err := shell.StorableEventsForCommand(core.DomainEvents{closed, assigned})

	// assert
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, core.LoanClosedEventType, first.EventType)
	assert.Equal(t, core.ReservationCopyAssignedEventType, rest[0].EventType)

	firstMetadata, err := shell.EventMetadataFrom(first)
	require.NoError(t, err)
	secondMetadata, err := shell.EventMetadataFrom(rest[0])
	require.NoError(t, err)

	assert.Equal(t, firstMetadata.CorrelationID, secondMetadata.CorrelationID)
	assert.Equal(t, firstMetadata.CorrelationID, firstMetadata.CausationID)
	assert.NotEqual(t, firstMetadata.MessageID, secondMetadata.MessageID)
	assert.NoError(t, uuid.Validate(firstMetadata.MessageID))
}

func Test_StorableEventsForCommand_Fails_WithoutEvents(t *testing.T) {
	// act
	_, _, err := shell.StorableEventsForCommand(nil)

	// assert
	assert.ErrorIs(t, err, shell.ErrNoEventsToMap)
}
