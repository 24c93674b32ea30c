package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/parley/internal/domain"
)

// TaskFilter narrows FindLatest. TitleContains is a case-insensitive
// substring match; IncompleteOnly skips completed tasks.
type TaskFilter struct {
	TitleContains  string
	IncompleteOnly bool
}

// AccountFilter selects one account by id or email. ID wins when both are set.
type AccountFilter struct {
	ID    string
	Email string
}

func (f AccountFilter) IsZero() bool {
	return f.ID == "" && f.Email == ""
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns every task, newest first.
	List(ctx context.Context) ([]*domain.Task, error)
	// FindLatest returns the newest task matching the filter.
	FindLatest(ctx context.Context, f TaskFilter) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	// CompleteAll marks every incomplete task completed and returns the count.
	CompleteAll(ctx context.Context, at time.Time) (int64, error)
	ListRecentlyCompleted(ctx context.Context, limit int) ([]*domain.Task, error)
}

type AccountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	// List returns every account, newest first, without password hashes.
	List(ctx context.Context) ([]*domain.Account, error)
	Get(ctx context.Context, f AccountFilter) (*domain.Account, error)
	Update(ctx context.Context, a *domain.Account) error
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
