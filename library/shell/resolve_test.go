package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_Resolvers_FindTitleAndUser(t *testing.T) {
	// arrange
	ctx := context.Background()
	now := time.Now()
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store,
		core.BuildBookCopyAddedToCirculation("111", "1", now),
		core.BuildBookCopyAddedToCirculation("222", "2", now),
		core.BuildLoanStarted("loan-1", "user-1", "222", "2", 7, now),
		core.BuildReservationPlaced("res-1", "user-2", "111", now),
	)

	// act
	loanRef, loanErr := shell.ResolveLoan(ctx, store, "loan-1")
	reservationRef, reservationErr := shell.ResolveReservation(ctx, store, "res-1")
	copyRef, copyErr := shell.ResolveCopy(ctx, store, "2")

	// assert
	require.NoError(t, loanErr)
	require.NoError(t, reservationErr)
	require.NoError(t, copyErr)
	assert.Equal(t, shell.LoanRef{LoanID: "loan-1", UserID: "user-1", ISBN: "222", AccessionCode: "2"}, loanRef)
	assert.Equal(t, shell.ReservationRef{ReservationID: "res-1", UserID: "user-2", ISBN: "111"}, reservationRef)
	assert.Equal(t, shell.CopyRef{AccessionCode: "2", ISBN: "222"}, copyRef)
}

func Test_Resolvers_Fail_WhenIDIsUnknown(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memengine.NewEventStore()

	// act
	_, loanErr := shell.ResolveLoan(ctx, store, "loan-x")
	_, reservationErr := shell.ResolveReservation(ctx, store, "res-x")
	_, copyErr := shell.ResolveCopy(ctx, store, "99")

	// assert
	assert.ErrorIs(t, loanErr, core.ErrLoanNotFound)
	assert.ErrorIs(t, reservationErr, core.ErrReservationNotFound)
	assert.ErrorIs(t, copyErr, core.ErrCopyNotFound)
}
