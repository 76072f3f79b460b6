package cataloghome

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	queryType = "CatalogHome"

	DefaultNewestLimit = 10
)

type Query struct {
	NewestLimit int
}

// BuildQuery falls back to DefaultNewestLimit for a limit below 1.
func BuildQuery(newestLimit int) Query {
	if newestLimit < 1 {
		newestLimit = DefaultNewestLimit
	}

	return Query{
		NewestLimit: newestLimit,
	}
}

func (q Query) QueryType() string {
	return queryType
}

type BookSummary struct {
	ISBN     core.ISBNString
	Title    string
	Authors  string
	CoverURL string
	AddedAt  time.Time
}

type CatalogHome struct {
	Featured       []BookSummary
	Newest         []BookSummary
	SequenceNumber uint
}

func (h CatalogHome) GetSequenceNumber() uint {
	return h.SequenceNumber
}
