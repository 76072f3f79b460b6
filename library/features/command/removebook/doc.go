// Package removebook implements removing an edition from the catalog once it has no copies in
// circulation and nobody reserves it.
package removebook
