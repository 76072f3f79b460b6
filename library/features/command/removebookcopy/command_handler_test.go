package removebookcopy_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removebookcopy"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_CommandHandler_Handle_RemovesFreeCopy(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store, givenCopy("1"), givenCopy("2"))
	handler := removebookcopy.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), removebookcopy.BuildCommand("2", now))

	// assert
	require.NoError(t, err)
	c := circulationtest.Circulation(t, store)
	assert.Len(t, c.Copies(isbn), 1)
	assert.True(t, c.AccessionCodeUsed("2"))
}

func Test_CommandHandler_Handle_Error_WhenCopyIsOnLoan(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store, givenCopy("1"), core.BuildLoanStarted("loan-1", "user-1", isbn, "1", 7, now.Add(-time.Hour)))
	handler := removebookcopy.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), removebookcopy.BuildCommand("1", now))

	// assert
	assert.ErrorIs(t, err, core.ErrCopyNotFree)
	status, _ := circulationtest.Circulation(t, store).CopyStatus("1")
	assert.Equal(t, core.CopyOnLoan, status)
}

func Test_CommandHandler_Handle_Error_WhenCopyIsUnknown(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	handler := removebookcopy.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), removebookcopy.BuildCommand("99", now))

	// assert
	assert.ErrorIs(t, err, core.ErrCopyNotFound)
}
