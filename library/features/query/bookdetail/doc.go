// Package bookdetail implements the Book Detail query: one catalog entry with the state of its copies,
// its waiting list and the other editions of the same work that the library holds.
package bookdetail
