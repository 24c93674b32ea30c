package service

import (
	"context"

	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/domain"
	"github.com/alexanderramin/parley/internal/repository"
)

type TaskService interface {
	Create(ctx context.Context, title, description string) (*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	FindLatest(ctx context.Context, f repository.TaskFilter) (*domain.Task, error)
	Update(ctx context.Context, id string, changes contract.TaskChanges) (*domain.Task, error)
	Complete(ctx context.Context, id string) (*domain.Task, error)
	Toggle(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	CompleteAll(ctx context.Context) (int64, error)
	RecentlyCompleted(ctx context.Context, limit int) ([]*domain.Task, error)
}

type AccountService interface {
	Create(ctx context.Context, in contract.NewAccount) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Find(ctx context.Context, f repository.AccountFilter) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Update(ctx context.Context, f repository.AccountFilter, changes contract.AccountChanges) (*domain.Account, error)
	UpdateByID(ctx context.Context, id string, changes contract.AccountChanges) (*domain.Account, error)
	// Delete removes the selected account and returns it as it was.
	Delete(ctx context.Context, f repository.AccountFilter) (*domain.Account, error)
	DeleteByID(ctx context.Context, id string) (*domain.Account, error)
	ChangePassword(ctx context.Context, f repository.AccountFilter, newPassword string) error
}

type ChatService interface {
	Turn(ctx context.Context, req contract.TurnRequest) (*contract.TurnResponse, error)
}
