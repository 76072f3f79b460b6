package featurebook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "FeatureBook"
)

type Command struct {
	ISBN       core.ISBNString
	Featured   bool
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(isbn core.ISBNString, featured bool, occurredAt time.Time) Command {
	return Command{
		ISBN:       core.CanonicalISBN(isbn),
		Featured:   featured,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
