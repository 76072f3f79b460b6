package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/mattn/go-sqlite3"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/internal/instrumentation"
)

const (
	defaultEventTableName = "events"
	engineName            = "sqlite"
	dialectSQLite         = "sqlite3"
	driverName            = "sqlite3"
	colEventType          = "event_type"
	colOccurredAt         = "occurred_at"
	colPayload            = "payload"
	colMetadata           = "metadata"
	colSequenceNumber     = "sequence_number"
	jsonExtractEquals     = "json_extract(payload, ?) = ?"
	stmtBeginImmediate    = "BEGIN IMMEDIATE"
	stmtCommit            = "COMMIT"
	stmtRollback          = "ROLLBACK"
	logMsgCloseRowsFailed = "failed to close database rows"
	logMsgRollbackFailed  = "failed to roll back append"
	logAttrError          = "error"
)

var (
	// ErrOpeningDatabaseFailed is returned by Open when the database file can't be opened.
	ErrOpeningDatabaseFailed = errors.New("opening sqlite database failed")

	// ErrCreatingSchemaFailed is returned by CreateSchema.
	ErrCreatingSchemaFailed = errors.New("creating sqlite schema failed")

	// ErrParsingOccurredAtFailed is returned when a stored timestamp can't be parsed.
	ErrParsingOccurredAtFailed = errors.New("parsing occurred_at failed")
)

// EventStore appends and queries events in a SQLite table.
//
// Append runs the boundary check and the insert inside BEGIN IMMEDIATE, which takes the database's
// write lock up front. A writer that can't get the lock within the busy timeout loses with
// eventstore.ErrConcurrencyConflict and is expected to retry.
type EventStore struct {
	db             *sql.DB
	eventTableName string
	observer       *instrumentation.Observer
}

// DSN builds a connection string for the database file at path with WAL journaling and a busy timeout.
func DSN(path string, busyTimeout time.Duration) string {
	return "file:" + path +
		"?_journal_mode=WAL&_busy_timeout=" + strconv.FormatInt(busyTimeout.Milliseconds(), 10) +
		"&_foreign_keys=on"
}

// Open opens the database file at path with the mattn/go-sqlite3 driver.
func Open(path string, busyTimeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(driverName, DSN(path, busyTimeout))
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return db, nil
}

// NewEventStore creates a new EventStore on top of a database opened with the sqlite3 driver.
func NewEventStore(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	es := EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
		observer:       &instrumentation.Observer{Engine: engineName},
	}

	for _, option := range options {
		if err := option(&es); err != nil {
			return EventStore{}, err
		}
	}

	return es, nil
}

// CreateSchema creates the events table and its index if they don't exist.
func (es EventStore) CreateSchema(ctx context.Context) error {
	if _, err := es.db.ExecContext(ctx, SchemaSQL(es.eventTableName)); err != nil {
		return errors.Join(ErrCreatingSchemaFailed, err)
	}

	return nil
}

// Query returns all events matching filter ordered by sequence number, plus the highest sequence number among them.
func (es EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, op := es.observer.Start(ctx, instrumentation.OperationQuery, nil)

	sqlQuery, args, err := es.buildSelectQuery(filter)
	if err != nil {
		op.Failed(ctx, instrumentation.ErrorTypeBuildQuery, err)
		return nil, 0, errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	rows, err := es.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		op.Failed(ctx, instrumentation.ErrorTypeDatabaseQuery, err)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}
	defer es.closeRows(ctx, rows)

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		row := queryResultRow{}

		if scanErr := rows.Scan(&row.eventType, &row.occurredAt, &row.payload, &row.metadata, &row.sequenceNumber); scanErr != nil {
			op.Failed(ctx, instrumentation.ErrorTypeRowScan, scanErr)
			return nil, 0, errors.Join(eventstore.ErrScanningDBRowFailed, scanErr)
		}

		occurredAt, parseErr := time.Parse(time.RFC3339Nano, row.occurredAt)
		if parseErr != nil {
			op.Failed(ctx, instrumentation.ErrorTypeRowScan, parseErr)
			return nil, 0, errors.Join(eventstore.ErrScanningDBRowFailed, ErrParsingOccurredAtFailed, parseErr)
		}

		event, buildErr := eventstore.BuildStorableEvent(row.eventType, occurredAt, []byte(row.payload), []byte(row.metadata))
		if buildErr != nil {
			op.Failed(ctx, instrumentation.ErrorTypeBuildStorableEvent, buildErr)
			return nil, 0, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildErr)
		}

		eventStream = append(eventStream, event)
		maxSequenceNumber = eventstore.MaxSequenceNumberUint(row.sequenceNumber)
	}

	if err = rows.Err(); err != nil {
		op.Failed(ctx, instrumentation.ErrorTypeDatabaseQuery, err)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	op.LogSQL(ctx, sqlQuery)
	op.Succeeded(ctx, len(eventStream), maxSequenceNumber)

	return eventStream, maxSequenceNumber, nil
}

// Append inserts all events atomically if the boundary described by filter did not move past expectedMaxSequenceNumber.
func (es EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	ctx, op := es.observer.Start(ctx, instrumentation.OperationAppend, map[string]string{
		instrumentation.AttrEventCount:       strconv.Itoa(len(allEvents)),
		instrumentation.AttrExpectedSequence: strconv.FormatUint(uint64(expectedMaxSequenceNumber), 10),
	})

	maxSeqQuery, maxSeqArgs, err := es.buildMaxSequenceQuery(filter)
	if err != nil {
		op.Failed(ctx, instrumentation.ErrorTypeBuildQuery, err)
		return errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	insertQuery, insertArgs, err := es.buildInsertQuery(allEvents)
	if err != nil {
		op.Failed(ctx, instrumentation.ErrorTypeBuildQuery, err)
		return errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	// BEGIN IMMEDIATE must run on the same connection as the statements it guards.
	conn, err := es.db.Conn(ctx)
	if err != nil {
		op.Failed(ctx, instrumentation.ErrorTypeDatabaseExec, err)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}
	defer func() { _ = conn.Close() }()

	if _, err = conn.ExecContext(ctx, stmtBeginImmediate); err != nil {
		if isLockContention(err) {
			op.Conflicted(ctx, expectedMaxSequenceNumber)
			return eventstore.ErrConcurrencyConflict
		}

		op.Failed(ctx, instrumentation.ErrorTypeDatabaseExec, err)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	var currentMaxSeq sql.NullInt64
	if err = conn.QueryRowContext(ctx, maxSeqQuery, maxSeqArgs...).Scan(&currentMaxSeq); err != nil {
		es.rollback(ctx, conn)
		op.Failed(ctx, instrumentation.ErrorTypeDatabaseQuery, err)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	if currentMaxSeq.Int64 != int64(expectedMaxSequenceNumber) {
		es.rollback(ctx, conn)
		op.Conflicted(ctx, expectedMaxSequenceNumber)
		return eventstore.ErrConcurrencyConflict
	}

	result, err := conn.ExecContext(ctx, insertQuery, insertArgs...)
	if err != nil {
		es.rollback(ctx, conn)
		op.Failed(ctx, instrumentation.ErrorTypeDatabaseExec, err)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		es.rollback(ctx, conn)
		op.Failed(ctx, instrumentation.ErrorTypeRowsAffected, err)
		return errors.Join(eventstore.ErrGettingRowsAffectedFailed, err)
	}

	if _, err = conn.ExecContext(ctx, stmtCommit); err != nil {
		es.rollback(ctx, conn)
		op.Failed(ctx, instrumentation.ErrorTypeDatabaseExec, err)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	op.LogSQL(ctx, insertQuery)

	if rowsAffected < int64(len(allEvents)) {
		op.Failed(ctx, instrumentation.ErrorTypeRowsAffected, eventstore.ErrAppendingEventFailed)
		return eventstore.ErrAppendingEventFailed
	}

	op.Succeeded(ctx, len(allEvents), expectedMaxSequenceNumber)

	return nil
}

type queryResultRow struct {
	eventType      string
	occurredAt     string
	payload        string
	metadata       string
	sequenceNumber int64
}

func isLockContention(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

func (es EventStore) rollback(ctx context.Context, conn *sql.Conn) {
	// the append context may already be canceled, the rollback must still run
	if _, err := conn.ExecContext(context.WithoutCancel(ctx), stmtRollback); err != nil {
		es.warn(ctx, logMsgRollbackFailed, err)
	}
}

func (es EventStore) closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		es.warn(ctx, logMsgCloseRowsFailed, err)
	}
}

func (es EventStore) warn(ctx context.Context, msg string, err error) {
	if es.observer.ContextualLogger != nil {
		es.observer.ContextualLogger.WarnContext(ctx, msg, logAttrError, err.Error())
	} else if es.observer.Logger != nil {
		es.observer.Logger.Warn(msg, logAttrError, err.Error())
	}
}

func (es EventStore) buildSelectQuery(filter eventstore.Filter) (string, []any, error) {
	selectStmt := goqu.Dialect(dialectSQLite).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.C(colSequenceNumber).Asc()).
		Prepared(true)

	if whereClause := buildWhereClause(filter); whereClause != nil {
		selectStmt = selectStmt.Where(whereClause)
	}

	return selectStmt.ToSQL()
}

func (es EventStore) buildMaxSequenceQuery(filter eventstore.Filter) (string, []any, error) {
	selectStmt := goqu.Dialect(dialectSQLite).
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber)).
		Prepared(true)

	if whereClause := buildWhereClause(filter); whereClause != nil {
		selectStmt = selectStmt.Where(whereClause)
	}

	return selectStmt.ToSQL()
}

func (es EventStore) buildInsertQuery(events eventstore.StorableEvents) (string, []any, error) {
	rows := make([]any, 0, len(events))

	for _, event := range events {
		rows = append(rows, goqu.Record{
			colEventType:  event.EventType,
			colOccurredAt: event.OccurredAt.UTC().Format(time.RFC3339Nano),
			colPayload:    string(event.PayloadJSON),
			colMetadata:   string(event.MetadataJSON),
		})
	}

	return goqu.Dialect(dialectSQLite).
		Insert(es.eventTableName).
		Rows(rows...).
		Prepared(true).
		ToSQL()
}

// buildWhereClause returns nil for a filter that matches any event.
func buildWhereClause(filter eventstore.Filter) exp.Expression {
	if filter.IsEmpty() {
		return nil
	}

	itemsExpressions := make([]exp.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		itemExpressions := make([]exp.Expression, 0, 2)

		if len(item.EventTypes()) > 0 {
			itemExpressions = append(itemExpressions, goqu.C(colEventType).In(item.EventTypes()))
		}

		predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))

		for _, predicate := range item.Predicates() {
			predicateExpressions = append(predicateExpressions, goqu.L(jsonExtractEquals, jsonPath(predicate.Key()), predicate.Val()))
		}

		if len(predicateExpressions) > 0 {
			if item.AllPredicatesMustMatch() {
				itemExpressions = append(itemExpressions, goqu.And(predicateExpressions...))
			} else {
				itemExpressions = append(itemExpressions, goqu.Or(predicateExpressions...))
			}
		}

		if len(itemExpressions) == 0 {
			return nil // an empty item matches any event
		}

		itemsExpressions = append(itemsExpressions, goqu.And(itemExpressions...))
	}

	return goqu.Or(itemsExpressions...)
}

// jsonPath quotes key so that keys containing dots address a top-level property.
func jsonPath(key string) string {
	return `$."` + key + `"`
}
