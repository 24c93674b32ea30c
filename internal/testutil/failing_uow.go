package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/parley/internal/db"
)

// FailOnNthExecUoW is a UnitOfWork whose Nth write (counted from 1) fails
// with Err. Reads are never counted, so a test can let the lookups of a use
// case through and break the write that follows them.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	wrap := func(tx db.DBTX) db.DBTX {
		return &execCounter{DBTX: tx, failOn: u.FailOn, err: u.Err}
	}
	return db.RunTx(ctx, u.DB, wrap, fn)
}

// execCounter is scoped to one transaction, which runs on one goroutine.
type execCounter struct {
	db.DBTX
	seen   int
	failOn int
	err    error
}

func (c *execCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.seen++
	if c.seen == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
