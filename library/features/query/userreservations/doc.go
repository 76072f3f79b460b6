// Package userreservations implements the User Reservations query.
//
// Reservations are split into those ready for collection, ordered by the day they became ready, and
// those still waiting for a copy, in placement order.
package userreservations
