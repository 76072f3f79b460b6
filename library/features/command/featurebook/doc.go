// Package featurebook implements toggling whether a book is shown on the catalog home.
package featurebook
