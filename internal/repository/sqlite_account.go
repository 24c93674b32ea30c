package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/parley/internal/db"
	"github.com/alexanderramin/parley/internal/domain"
)

const accountColumns = `id, email, password_hash, name, role, is_active, created_at, updated_at`

// SQLiteAccountRepo implements AccountRepo on SQLite.
type SQLiteAccountRepo struct {
	db db.DBTX
}

func NewSQLiteAccountRepo(conn db.DBTX) *SQLiteAccountRepo {
	return &SQLiteAccountRepo{db: conn}
}

func (r *SQLiteAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		domain.NormalizeEmail(a.Email),
		a.PasswordHash,
		a.Name,
		string(a.Role),
		boolToInt(a.IsActive),
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("account %s: %w", a.Email, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func (r *SQLiteAccountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	query := `SELECT id, email, '', name, role, is_active, created_at, updated_at
		FROM accounts ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return accounts, nil
}

func (r *SQLiteAccountRepo) Get(ctx context.Context, f AccountFilter) (*domain.Account, error) {
	var row *sql.Row
	switch {
	case f.ID != "":
		row = r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, f.ID)
	case f.Email != "":
		row = r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ?`,
			domain.NormalizeEmail(f.Email))
	default:
		return nil, &domain.ValidationError{Field: "email", Message: "an id or email is required"}
	}
	return scanAccount(row)
}

func (r *SQLiteAccountRepo) Update(ctx context.Context, a *domain.Account) error {
	query := `UPDATE accounts SET email = ?, name = ?, role = ?, is_active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		domain.NormalizeEmail(a.Email),
		a.Name,
		string(a.Role),
		boolToInt(a.IsActive),
		formatTime(a.UpdatedAt),
		a.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("account %s: %w", a.Email, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}
	return requireAffected(res, "account")
}

func (r *SQLiteAccountRepo) UpdatePassword(ctx context.Context, id, hash string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`, hash, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return requireAffected(res, "account")
}

func (r *SQLiteAccountRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	return requireAffected(res, "account")
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		a                    domain.Account
		role                 string
		isActive             int
		createdAt, updatedAt string
	)
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &role, &isActive, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning account: %w", err)
	}
	a.Role = domain.Role(role)
	a.IsActive = intToBool(isActive)
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	return &a, nil
}
