package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TxFunc is the body of a unit of work. Repositories built from tx see the
// transaction's view of the store.
type TxFunc func(ctx context.Context, tx DBTX) error

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// SQLiteUnitOfWork commits when fn returns nil and rolls back otherwise,
// including when fn panics.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	return RunTx(ctx, u.db, nil, fn)
}

// RunTx begins a transaction on conn and runs fn in it. A non-nil wrap
// decorates the handle fn receives; commit and rollback still go to the
// real transaction.
func RunTx(ctx context.Context, conn *sql.DB, wrap func(DBTX) DBTX, fn TxFunc) (err error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	var handle DBTX = tx
	if wrap != nil {
		handle = wrap(tx)
	}

	done := false
	defer func() {
		if done {
			return
		}
		// Also runs while a panic unwinds.
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && err != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()

	if err := fn(ctx, handle); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	done = true
	return nil
}
