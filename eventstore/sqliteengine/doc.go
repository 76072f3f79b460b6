// Package sqliteengine provides a file-backed event store for single-node deployments and the CLI.
//
// It implements the same Query/Append contract as postgresengine. Payload predicates are translated
// to json_extract comparisons and Append serializes writers with BEGIN IMMEDIATE.
//
// Open the database with Open (or the DSN helper) so that WAL mode and the busy timeout are set:
//
//	db, err := sqliteengine.Open("library.db", 5*time.Second)
//	es, err := sqliteengine.NewEventStore(db, sqliteengine.WithTableName("events"))
//	err = es.CreateSchema(ctx)
package sqliteengine
