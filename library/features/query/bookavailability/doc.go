// Package bookavailability implements the Book Availability query: how many copies of a title are
// free right now, and when the next one is expected back if none is.
package bookavailability
