package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/alexanderramin/parley/internal/db"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(db.TimeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(db.TimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseNullableTime returns nil for NULL, empty or unparseable values.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(db.TimeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString maps a nil pointer to SQL NULL.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
