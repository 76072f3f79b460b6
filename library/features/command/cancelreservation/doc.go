// Package cancelreservation implements the Cancel Reservation use case.
//
// A cancelled reservation that held a copy releases it, and the copy goes to the next pending
// reservation of the title in the same append.
package cancelreservation
