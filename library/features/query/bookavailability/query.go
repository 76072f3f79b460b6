package bookavailability

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	queryType = "BookAvailability"
)

type Query struct {
	ISBN core.ISBNString
}

func BuildQuery(isbn core.ISBNString) Query {
	return Query{
		ISBN: core.CanonicalISBN(isbn),
	}
}

func (q Query) QueryType() string {
	return queryType
}

// Availability is the "available / total" view of one title.
type Availability struct {
	ISBN              core.ISBNString
	Title             string
	InCatalog         bool
	Available         int
	Total             int
	ReadyNow          bool
	NextAvailableDate *time.Time
	SequenceNumber    uint
}

func (a Availability) GetSequenceNumber() uint {
	return a.SequenceNumber
}
