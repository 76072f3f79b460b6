// Package postgreswrapper connects tests to a live PostgreSQL given by LMS_TEST_POSTGRES_DSN.
//
// Without that variable the tests that need a database are skipped, so `go test ./...` works on a
// machine without PostgreSQL.
package postgreswrapper

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// EnvDSN names the environment variable holding the test database DSN.
const EnvDSN = "LMS_TEST_POSTGRES_DSN"

// Wrapper holds a pool and a table name that is unique for the test.
type Wrapper struct {
	Pool      *pgxpool.Pool
	TableName string
}

// ConnectOrSkip opens a pool or skips the test. The table is dropped and the pool closed on cleanup.
func ConnectOrSkip(t *testing.T) Wrapper {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)

	w := Wrapper{
		Pool:      pool,
		TableName: fmt.Sprintf("events_test_%s", uuid.NewString()[:8]),
	}

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), fmt.Sprintf("DROP TABLE IF EXISTS %s", w.TableName))
		pool.Close()
	})

	return w
}
