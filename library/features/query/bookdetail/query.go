package bookdetail

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	queryType = "BookDetail"
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

type CopyInfo struct {
	AccessionCode core.AccessionCodeString
	Status        string
}

type Edition struct {
	ISBN        core.ISBNString
	EditionID   string
	Title       string
	PublishedOn *time.Time
}

type BookDetail struct {
	Book              core.Book
	Authors           string
	Available         int
	Total             int
	Copies            []CopyInfo
	Waiting           int
	NextAvailableDate *time.Time
	OtherEditions     []Edition
	SequenceNumber    uint
}

func (d BookDetail) GetSequenceNumber() uint {
	return d.SequenceNumber
}
