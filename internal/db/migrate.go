package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// TimeLayout is the fixed-width UTC layout used for every timestamp column,
// so lexical ORDER BY matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// Migrate applies the schema. Statements are idempotent and re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_completed INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending','completed')),
		priority TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low','medium','high')),
		completed_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(is_completed, created_at)`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE COLLATE NOCASE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_created ON accounts(created_at)`,
}
