package app

import (
	"context"

	"github.com/alexanderramin/parley/internal/domain"
)

type ChatUseCase interface {
	Turn(ctx context.Context, req TurnRequest) (*TurnResponse, error)
}

// TaskChanges is a partial task update; nil fields are left alone.
type TaskChanges struct {
	Title       *string
	Description *string
	IsCompleted *bool
}

type TaskUseCase interface {
	Create(ctx context.Context, title, description string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, id string, changes TaskChanges) (*domain.Task, error)
	Toggle(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// NewAccount is the input for account creation. Role defaults when empty.
type NewAccount struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// AccountChanges is a partial account update; nil fields are left alone.
type AccountChanges struct {
	Email    *string
	Password *string
	Name     *string
	Role     *domain.Role
	IsActive *bool
}

// IsEmpty reports whether the update would change nothing.
func (c AccountChanges) IsEmpty() bool {
	return c.Email == nil && c.Password == nil && c.Name == nil && c.Role == nil && c.IsActive == nil
}

type AccountUseCase interface {
	Create(ctx context.Context, in NewAccount) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdateByID(ctx context.Context, id string, changes AccountChanges) (*domain.Account, error)
	DeleteByID(ctx context.Context, id string) (*domain.Account, error)
}
