// Package markreservationoffshelves implements the staff flag telling that a held copy was taken off
// the public shelves and put aside for collection.
package markreservationoffshelves
