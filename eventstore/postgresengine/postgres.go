package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/internal/instrumentation"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine/internal/adapters"
)

const (
	defaultEventTableName = "events"
	engineName            = "postgres"
	logMsgCloseRowsFailed = "failed to close database rows"
	logAttrError          = "error"
	colEventType          = "event_type"
	colOccurredAt         = "occurred_at"
	colPayload            = "payload"
	colMetadata           = "metadata"
	colSequenceNumber     = "sequence_number"
	cteContext            = "context"
	cteVals               = "vals"
	dialectPostgres       = "postgres"
	aliasMaxSeq           = "max_seq"
	castText              = "?::text"
	castTimestamp         = "?::timestamp with time zone"
	castJsonb             = "?::jsonb"
	containsJsonb         = "payload @> ?::jsonb"
)

type sqlQueryString = string

// EventStore appends and queries events in a PostgreSQL table.
//
// Append runs the guarded insert in a SERIALIZABLE transaction: the CTE reads the boundary's max
// sequence number and the insert only produces rows if it still equals the expected one. Two writers
// racing inside the same boundary cannot both commit, the loser gets eventstore.ErrConcurrencyConflict.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	observer       *instrumentation.Observer
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromPGXPoolAndReplica creates an EventStore that serves eventually consistent reads from replica.
func NewEventStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (EventStore, error) {
	if primary == nil || replica == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (EventStore, error) {
	if db == nil {
		return EventStore{}, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (EventStore, error) {
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

// CreateSchema creates the events table and its indexes if they don't exist.
func (es EventStore) CreateSchema(ctx context.Context) error {
	if _, err := es.db.Exec(ctx, SchemaSQL(es.eventTableName)); err != nil {
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

	readFromReplica := eventstore.GetConsistencyLevel(ctx) == eventstore.EventualConsistency

	rows, err := es.db.Query(ctx, readFromReplica, sqlQuery, args...)
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

		event, buildErr := eventstore.BuildStorableEvent(row.eventType, row.occurredAt, row.payload, row.metadata)
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

	sqlQuery, args, err := es.buildInsertQuery(allEvents, filter, expectedMaxSequenceNumber)
	if err != nil {
		op.Failed(ctx, instrumentation.ErrorTypeBuildQuery, err)
		return errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	rowsAffected, err := es.db.ExecSerializable(ctx, sqlQuery, args...)
	if errors.Is(err, adapters.ErrSerializationFailure) {
		op.Conflicted(ctx, expectedMaxSequenceNumber)
		return eventstore.ErrConcurrencyConflict
	}

	if err != nil {
		op.Failed(ctx, instrumentation.ErrorTypeDatabaseExec, err)
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	op.LogSQL(ctx, sqlQuery)

	if rowsAffected < int64(len(allEvents)) {
		op.Conflicted(ctx, expectedMaxSequenceNumber)
		return eventstore.ErrConcurrencyConflict
	}

	op.Succeeded(ctx, len(allEvents), expectedMaxSequenceNumber)

	return nil
}

type queryResultRow struct {
	eventType      string
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
	sequenceNumber int64
}

func (es EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		if es.observer.ContextualLogger != nil {
			es.observer.ContextualLogger.WarnContext(ctx, logMsgCloseRowsFailed, logAttrError, err.Error())
		} else if es.observer.Logger != nil {
			es.observer.Logger.Warn(logMsgCloseRowsFailed, logAttrError, err.Error())
		}
	}
}

func (es EventStore) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, []any, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.C(colSequenceNumber).Asc()).
		Prepared(true)

	whereClause, err := buildWhereClause(filter)
	if err != nil {
		return "", nil, err
	}

	if whereClause != nil {
		selectStmt = selectStmt.Where(whereClause)
	}

	return selectStmt.ToSQL()
}

// buildInsertQuery builds
//
//	WITH context AS (SELECT MAX(sequence_number) AS max_seq FROM events WHERE <filter>),
//	     vals AS (SELECT ... UNION ALL SELECT ...)
//	INSERT INTO events (...) SELECT vals.* FROM context, vals WHERE COALESCE(max_seq, 0) = <expected>
func (es EventStore) buildInsertQuery(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (sqlQueryString, []any, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt := builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	whereClause, err := buildWhereClause(filter)
	if err != nil {
		return "", nil, err
	}

	if whereClause != nil {
		cteStmt = cteStmt.Where(whereClause)
	}

	var valuesStmt *goqu.SelectDataset
	for _, event := range events {
		stmt := builder.Select(
			goqu.L(castText, event.EventType).As(colEventType),
			goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
			goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
			goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
		)

		if valuesStmt == nil {
			valuesStmt = stmt
			continue
		}

		valuesStmt = valuesStmt.UnionAll(stmt)
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					fmt.Sprintf("%s.%s", cteVals, colEventType),
					fmt.Sprintf("%s.%s", cteVals, colOccurredAt),
					fmt.Sprintf("%s.%s", cteVals, colPayload),
					fmt.Sprintf("%s.%s", cteVals, colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(int64(expectedMaxSequenceNumber)))),
		).
		Prepared(true)

	return insertStmt.ToSQL()
}

// buildWhereClause returns nil for a filter that matches any event.
func buildWhereClause(filter eventstore.Filter) (exp.Expression, error) {
	if filter.IsEmpty() {
		return nil, nil
	}

	itemsExpressions := make([]exp.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		itemExpressions := make([]exp.Expression, 0, 2)

		if len(item.EventTypes()) > 0 {
			itemExpressions = append(itemExpressions, goqu.C(colEventType).In(item.EventTypes()))
		}

		predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))

		for _, predicate := range item.Predicates() {
			containment, err := jsoniter.ConfigFastest.Marshal(map[string]string{predicate.Key(): predicate.Val()})
			if err != nil {
				return nil, err
			}

			predicateExpressions = append(predicateExpressions, goqu.L(containsJsonb, string(containment)))
		}

		if len(predicateExpressions) > 0 {
			if item.AllPredicatesMustMatch() {
				itemExpressions = append(itemExpressions, goqu.And(predicateExpressions...))
			} else {
				itemExpressions = append(itemExpressions, goqu.Or(predicateExpressions...))
			}
		}

		if len(itemExpressions) == 0 {
			return nil, nil // an empty item matches any event
		}

		itemsExpressions = append(itemsExpressions, goqu.And(itemExpressions...))
	}

	return goqu.Or(itemsExpressions...), nil
}
