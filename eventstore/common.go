package eventstore

import (
	"errors"
)

var (
	// ErrEmptyEventsTableName is returned when an engine is configured with an empty table name.
	ErrEmptyEventsTableName = errors.New("events table name must not be empty")

	// ErrNilDatabaseConnection is returned when an engine is constructed without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrConcurrencyConflict is returned by Append when the boundary moved past the expected sequence number.
	ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrAppendingEventFailed        = errors.New("appending the event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrBuildingQueryFailed         = errors.New("building query failed")
)

// MaxSequenceNumberUint is the highest sequence number inside a dynamic event stream at query time.
type MaxSequenceNumberUint = uint
