package userreservations

import (
	"slices"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Project lists the active reservations of a user.
//
// Query Logic:
//
//	GIVEN: A user with UserID
//	WHEN: UserReservations query is executed
//	THEN: ready reservations are returned ordered by ReadySince, with expiry and days left to collect
//	THEN: pending reservations are returned in placement order
//	EXCLUDES: cancelled reservations and reservations turned into loans
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) UserReservations {
	c := core.ProjectCirculation(history)

	result := UserReservations{
		UserID:         query.UserID,
		Ready:          make([]ReservationInfo, 0),
		Pending:        make([]ReservationInfo, 0),
		SequenceNumber: maxSequenceNumber,
	}

	for _, reservation := range c.ReservationsOf(query.UserID) {
		book, _ := c.Book(reservation.ISBN)

		info := ReservationInfo{
			ReservationID: reservation.ReservationID,
			ISBN:          reservation.ISBN,
			Title:         book.Title,
			AccessionCode: reservation.AccessionCode,
			PlacedAt:      reservation.PlacedAt,
			ReadySince:    reservation.ReadySince,
			OffShelves:    reservation.OffShelves,
		}

		expiry, ready := reservation.Expiry()
		if !ready {
			result.Pending = append(result.Pending, info)
			continue
		}

		info.Expiry = &expiry
		info.DaysToCollect = core.CollectionWindowDays - core.DaysBetween(*reservation.ReadySince, query.Today)
		info.Expired = reservation.IsExpired(query.Today)
		result.Ready = append(result.Ready, info)
	}

	slices.SortStableFunc(result.Ready, func(a, b ReservationInfo) int {
		return a.ReadySince.Compare(*b.ReadySince)
	})

	return result
}

// BuildEventFilter selects the reservations of the user plus the catalog for titles.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ReservationPlacedEventType,
			core.ReservationCopyAssignedEventType,
			core.ReservationMarkedOffShelvesEventType,
			core.ReservationCancelledEventType,
			core.ReservationTurnedIntoLoanEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		OrMatching().
		AnyEventTypeOf(core.BookAddedToCatalogEventType).
		Finalize()
}
