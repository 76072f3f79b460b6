// Package cataloghome implements the catalog home listing: the featured books and the newest additions.
package cataloghome
