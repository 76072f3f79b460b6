package closeloan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/closeloan"
)

const (
	isbn   = "9780141439518"
	user1  = "user-1"
	user2  = "user-2"
	user3  = "user-3"
	loanID = "loan-1"
)

var (
	loanDate = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	now      = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
)

func Test_Decide_Success_WritesHistoryWithOriginalLoanDate(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenCopy("1"),
		givenLoan(loanID, user1, "1"),
	}

	// act
	result := closeloan.Decide(history, closeloan.BuildCommand(loanID, now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	closed, ok := result.Events[0].(core.LoanClosed)
	require.True(t, ok)
	assert.Equal(t, loanDate, closed.LoanDate)
	assert.Equal(t, now, closed.OccurredAt)
	assert.Equal(t, 9, closed.HistoryLoan().DurationDays())
}

func Test_Decide_HandsCopyToOldestPendingReservation(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenCopy("1"),
		givenLoan(loanID, user1, "1"),
		core.BuildReservationPlaced("res-old", user2, isbn, now.Add(-48*time.Hour)),
		core.BuildReservationPlaced("res-new", user3, isbn, now.Add(-24*time.Hour)),
	}

	// act
	result := closeloan.Decide(history, closeloan.BuildCommand(loanID, now))

	// assert
	require.Len(t, result.Events, 2)
	assert.IsType(t, core.LoanClosed{}, result.Events[0])
	assigned, ok := result.Events[1].(core.ReservationCopyAssigned)
	require.True(t, ok)
	assert.Equal(t, "res-old", assigned.ReservationID)
	assert.Equal(t, user2, assigned.UserID)
	assert.Equal(t, "1", assigned.AccessionCode)
	assert.Equal(t, now, assigned.OccurredAt)
}

func Test_Decide_SkipsReservationsThatAlreadyHoldACopy(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenCopy("1"),
		givenCopy("2"),
		givenLoan(loanID, user1, "1"),
		core.BuildReservationPlaced("res-ready", user2, isbn, now.Add(-48*time.Hour)),
		core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-ready", UserID: user2, ISBN: isbn}, "2", now.Add(-47*time.Hour)),
		core.BuildReservationPlaced("res-pending", user3, isbn, now.Add(-24*time.Hour)),
	}

	// act
	result := closeloan.Decide(history, closeloan.BuildCommand(loanID, now))

	// assert
	require.Len(t, result.Events, 2)
	assert.Equal(t, "res-pending", result.Events[1].(core.ReservationCopyAssigned).ReservationID)
}

func Test_Decide_NoHandOff_WhenNobodyWaits(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenCopy("1"),
		givenLoan(loanID, user1, "1"),
		core.BuildReservationPlaced("res-1", user2, isbn, now.Add(-48*time.Hour)),
		core.BuildReservationCancelled(core.Reservation{ReservationID: "res-1", UserID: user2, ISBN: isbn}, now.Add(-24*time.Hour)),
	}

	// act
	result := closeloan.Decide(history, closeloan.BuildCommand(loanID, now))

	// assert
	assert.Len(t, result.Events, 1)
}

func Test_Decide_Idempotent_WhenLoanIsAlreadyClosed(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenCopy("1"),
		givenLoan(loanID, user1, "1"),
		core.BuildLoanClosed(core.Loan{LoanID: loanID, UserID: user1, ISBN: isbn, AccessionCode: "1", LoanDate: loanDate}, now.Add(-time.Hour)),
	}

	// act
	result := closeloan.Decide(history, closeloan.BuildCommand(loanID, now))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error_WhenLoanIsUnknown(t *testing.T) {
	// act
	result := closeloan.Decide(core.DomainEvents{givenCopy("1")}, closeloan.BuildCommand(loanID, now))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrLoanNotFound)
	require.Len(t, result.Events, 1)
	assert.True(t, result.Events[0].IsErrorEvent())
}

func givenCopy(code core.AccessionCodeString) core.DomainEvent {
	return core.BuildBookCopyAddedToCirculation(isbn, code, loanDate.Add(-24*time.Hour))
}

func givenLoan(id core.LoanIDString, user core.UserIDString, code core.AccessionCodeString) core.DomainEvent {
	return core.BuildLoanStarted(id, user, isbn, code, core.DefaultLoanLengthDays, loanDate)
}
