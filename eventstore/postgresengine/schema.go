package postgresengine

import (
	"errors"
	"fmt"
)

// ErrCreatingSchemaFailed is returned by CreateSchema.
var ErrCreatingSchemaFailed = errors.New("creating the events schema failed")

// SchemaSQL returns the DDL for an events table named tableName.
//
// The GIN index with jsonb_path_ops serves the payload containment predicates of the filters.
func SchemaSQL(tableName string) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
    sequence_number BIGSERIAL PRIMARY KEY,
    occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
    event_type TEXT NOT NULL,
    payload JSONB NOT NULL,
    metadata JSONB NOT NULL,
    append_time TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS %[1]s_event_type_idx ON %[1]s (event_type);
CREATE INDEX IF NOT EXISTS %[1]s_payload_idx ON %[1]s USING gin (payload jsonb_path_ops);
`, tableName)
}
