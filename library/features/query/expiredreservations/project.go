package expiredreservations

import (
	"slices"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Project lists expired reservations, the longest expired first.
//
// Query Logic:
//
//	GIVEN: A day Today
//	WHEN: ExpiredReservations query is executed
//	THEN: every active reservation whose expiry lies before Today is returned
//	EXCLUDES: pending reservations and reservations that ended
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) ExpiredReservations {
	c := core.ProjectCirculation(history)

	expired := make([]ExpiredReservation, 0)
	for _, reservation := range c.Reservations() {
		if !reservation.IsExpired(query.Today) {
			continue
		}

		expiry, _ := reservation.Expiry()
		book, _ := c.Book(reservation.ISBN)

		expired = append(expired, ExpiredReservation{
			ReservationID: reservation.ReservationID,
			UserID:        reservation.UserID,
			ISBN:          reservation.ISBN,
			Title:         book.Title,
			AccessionCode: reservation.AccessionCode,
			ReadySince:    *reservation.ReadySince,
			Expiry:        expiry,
			OffShelves:    reservation.OffShelves,
		})
	}

	slices.SortStableFunc(expired, func(a, b ExpiredReservation) int {
		return a.Expiry.Compare(b.Expiry)
	})

	return ExpiredReservations{
		Reservations:   expired,
		Count:          len(expired),
		SequenceNumber: maxSequenceNumber,
	}
}

func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.ReservationPlacedEventType,
			core.ReservationCopyAssignedEventType,
			core.ReservationMarkedOffShelvesEventType,
			core.ReservationCancelledEventType,
			core.ReservationTurnedIntoLoanEventType,
		).
		Finalize()
}
