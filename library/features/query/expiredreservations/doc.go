// Package expiredreservations implements the staff listing of ready reservations whose collection
// window has passed. Expiry is derived from the day a copy was assigned; nothing ends them automatically.
package expiredreservations
