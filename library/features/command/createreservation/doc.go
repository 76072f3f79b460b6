// Package createreservation implements the Create Reservation use case.
//
// A user may hold any number of reservations for the same title, even while borrowing it.
// The new reservation immediately gets an available copy if there is one. No notification is
// sent for that, the caller shows the outcome directly.
package createreservation
