package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/parley/internal/db"
	"github.com/alexanderramin/parley/internal/domain"
)

const taskColumns = `id, title, description, is_completed, status, priority, completed_at, created_at, updated_at`

// newest first; rowid breaks ties between rows created in the same instant
const taskNewestFirst = ` ORDER BY created_at DESC, rowid DESC`

// SQLiteTaskRepo implements TaskRepo on SQLite.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		boolToInt(t.IsCompleted),
		string(t.Status),
		string(t.Priority),
		nullableTimeToString(t.CompletedAt),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return scanTask(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks`+taskNewestFirst)
}

func (r *SQLiteTaskRepo) FindLatest(ctx context.Context, f TaskFilter) (*domain.Task, error) {
	var where []string
	var args []any
	if f.TitleContains != "" {
		where = append(where, `instr(lower(title), lower(?)) > 0`)
		args = append(args, f.TitleContains)
	}
	if f.IncompleteOnly {
		where = append(where, `is_completed = 0`)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += taskNewestFirst + ` LIMIT 1`
	return scanTask(r.db.QueryRowContext(ctx, query, args...))
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, is_completed = ?, status = ?, priority = ?,
		completed_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		boolToInt(t.IsCompleted),
		string(t.Status),
		string(t.Priority),
		nullableTimeToString(t.CompletedAt),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task")
}

func (r *SQLiteTaskRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, fmt.Errorf("deleting all tasks: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteTaskRepo) CompleteAll(ctx context.Context, at time.Time) (int64, error) {
	ts := formatTime(at)
	query := `UPDATE tasks SET is_completed = 1, status = 'completed', completed_at = ?, updated_at = ?
		WHERE is_completed = 0`
	res, err := r.db.ExecContext(ctx, query, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("completing all tasks: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteTaskRepo) ListRecentlyCompleted(ctx context.Context, limit int) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE is_completed = 1 AND status = 'completed'
		ORDER BY updated_at DESC, rowid DESC LIMIT ?`
	return r.query(ctx, query, limit)
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t                    domain.Task
		isCompleted          int
		status, priority     string
		completedAt          sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &isCompleted, &status, &priority,
		&completedAt, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.IsCompleted = intToBool(isCompleted)
	t.Status = domain.TaskStatus(status)
	t.Priority = domain.TaskPriority(priority)
	t.CompletedAt = parseNullableTime(completedAt)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}
	return nil
}
