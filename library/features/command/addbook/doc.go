// Package addbook implements adding an edition to the catalog.
//
// An ISBN and an Open Library edition id can each be in the catalog only once. The boundary covers
// both, so two editions racing for one ISBN cannot both be added.
package addbook
