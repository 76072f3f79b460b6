// Package turnreservationintoloan implements the collection of a ready reservation: the held copy is
// lent to the reservation's user and the reservation ends in the same append.
//
// The loan rules of package createloan apply, except that the user's own hold does not block the copy.
package turnreservationintoloan
