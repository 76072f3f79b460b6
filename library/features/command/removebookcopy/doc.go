// Package removebookcopy implements taking a copy out of circulation. Only a free copy can be removed.
package removebookcopy
