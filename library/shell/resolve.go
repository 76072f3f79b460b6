package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Commands that only name a loan, reservation or copy first resolve the title and user it belongs to,
// so the consistency boundary can be built from ISBN and UserID. Those references never change once
// written, which makes the lookup safe outside of the boundary.

// LoanRef identifies the title and user of a loan.
type LoanRef struct {
	LoanID        core.LoanIDString
	UserID        core.UserIDString
	ISBN          core.ISBNString
	AccessionCode core.AccessionCodeString
}

// ReservationRef identifies the title and user of a reservation.
type ReservationRef struct {
	ReservationID core.ReservationIDString
	UserID        core.UserIDString
	ISBN          core.ISBNString
}

// CopyRef identifies the title of a copy.
type CopyRef struct {
	AccessionCode core.AccessionCodeString
	ISBN          core.ISBNString
}

// ResolveLoan returns core.ErrLoanNotFound for unknown loan ids.
func ResolveLoan(ctx context.Context, store QueriesEvents, loanID core.LoanIDString) (LoanRef, error) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanStartedEventType).
		AndAnyPredicateOf(eventstore.P("LoanID", loanID)).
		Finalize()

	event, found, err := firstMatching(ctx, store, filter)
	if err != nil {
		return LoanRef{}, err
	}

	started, ok := event.(core.LoanStarted)
	if !found || !ok {
		return LoanRef{}, core.ErrLoanNotFound
	}

	return LoanRef{
		LoanID:        started.LoanID,
		UserID:        started.UserID,
		ISBN:          started.ISBN,
		AccessionCode: started.AccessionCode,
	}, nil
}

// ResolveReservation returns core.ErrReservationNotFound for unknown reservation ids.
func ResolveReservation(ctx context.Context, store QueriesEvents, reservationID core.ReservationIDString) (ReservationRef, error) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.ReservationPlacedEventType).
		AndAnyPredicateOf(eventstore.P("ReservationID", reservationID)).
		Finalize()

	event, found, err := firstMatching(ctx, store, filter)
	if err != nil {
		return ReservationRef{}, err
	}

	placed, ok := event.(core.ReservationPlaced)
	if !found || !ok {
		return ReservationRef{}, core.ErrReservationNotFound
	}

	return ReservationRef{
		ReservationID: placed.ReservationID,
		UserID:        placed.UserID,
		ISBN:          placed.ISBN,
	}, nil
}

// ResolveCopy returns core.ErrCopyNotFound for accession codes that were never in circulation.
func ResolveCopy(ctx context.Context, store QueriesEvents, accessionCode core.AccessionCodeString) (CopyRef, error) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookCopyAddedToCirculationEventType).
		AndAnyPredicateOf(eventstore.P("AccessionCode", accessionCode)).
		Finalize()

	event, found, err := firstMatching(ctx, store, filter)
	if err != nil {
		return CopyRef{}, err
	}

	added, ok := event.(core.BookCopyAddedToCirculation)
	if !found || !ok {
		return CopyRef{}, core.ErrCopyNotFound
	}

	return CopyRef{AccessionCode: added.AccessionCode, ISBN: added.ISBN}, nil
}

func firstMatching(ctx context.Context, store QueriesEvents, filter eventstore.Filter) (core.DomainEvent, bool, error) {
	storableEvents, _, err := store.Query(eventstore.WithStrongConsistency(ctx), filter)
	if err != nil {
		return nil, false, err
	}

	if len(storableEvents) == 0 {
		return nil, false, nil
	}

	event, err := DomainEventFrom(storableEvents[0])
	if err != nil {
		return nil, false, err
	}

	return event, true, nil
}
