// Package addbookcopy implements putting a physical copy of a catalog book into circulation.
//
// Accession codes are never reused, not even after the copy was removed. A new copy does not
// trigger a hand-off: pending reservations are served by assigncopy.
package addbookcopy
