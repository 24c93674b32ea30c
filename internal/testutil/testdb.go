package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/parley/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a private in-memory store with the todo and account tables
// in place. It is closed during test cleanup.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "open in-memory store")

	t.Cleanup(func() {
		assert.NoError(t, conn.Close(), "close in-memory store")
	})
	return conn
}

// NewTestUoW wraps conn in the SQLite unit of work used by the services.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
