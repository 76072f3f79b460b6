package sqliteengine

import (
	"fmt"
)

// SchemaSQL returns the DDL for an events table named tableName.
func SchemaSQL(tableName string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
    sequence_number INTEGER PRIMARY KEY AUTOINCREMENT,
    occurred_at TEXT NOT NULL,
    event_type TEXT NOT NULL,
    payload TEXT NOT NULL,
    metadata TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS %[1]s_event_type_idx ON %[1]s (event_type);`, tableName)
}
