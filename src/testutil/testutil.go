package testutil

import (
	"context"
	"os"
	"testing"

	"git.handmade.network/hmn/ltree/src/config"
	"git.handmade.network/hmn/ltree/src/db"
	"github.com/jackc/pgx/v5"
)

// Names the database that tests may freely create tables in.
const DatabaseEnvVar = "HMN_LTREE_TEST_DB"

/*
Connects to the test database, skipping the test if none was configured.
The connection is closed when the test finishes.
*/
func Conn(t *testing.T, hooks ...db.AfterConnectFunc) *pgx.Conn {
	t.Helper()

	dbName := os.Getenv(DatabaseEnvVar)
	if dbName == "" {
		t.Skipf("set %s to run tests against a database", DatabaseEnvVar)
	}

	conn := db.NewConnWithConfig(config.PostgresConfig{DbName: dbName}, hooks...)
	t.Cleanup(func() {
		conn.Close(context.Background())
	})
	return conn
}

// Starts a transaction that is rolled back when the test finishes.
func Tx(t *testing.T, conn *pgx.Conn) pgx.Tx {
	t.Helper()

	ctx := context.Background()
	tx, err := conn.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	t.Cleanup(func() {
		tx.Rollback(ctx)
	})
	return tx
}
