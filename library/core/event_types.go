package core

// CirculationEventTypes are the state changing events that carry an ISBN.
func CirculationEventTypes() []EventTypeString {
	return []EventTypeString{
		BookAddedToCatalogEventType,
		BookFeatureChangedEventType,
		BookRemovedFromCatalogEventType,
		BookCopyAddedToCirculationEventType,
		BookCopyRemovedFromCirculationEventType,
		LoanStartedEventType,
		LoanRenewedEventType,
		LoanClosedEventType,
		ReservationPlacedEventType,
		ReservationCopyAssignedEventType,
		ReservationMarkedOffShelvesEventType,
		ReservationCancelledEventType,
		ReservationTurnedIntoLoanEventType,
	}
}

// UserEventTypes are the events that define a user and the user's active loans.
func UserEventTypes() []EventTypeString {
	return []EventTypeString{
		UserRegisteredEventType,
		UserPolicyChangedEventType,
		LoanStartedEventType,
		LoanRenewedEventType,
		LoanClosedEventType,
	}
}
