package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/db"
	"github.com/alexanderramin/parley/internal/domain"
	"github.com/alexanderramin/parley/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks repository.TaskRepo
	uow   db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, uow: uow}
}

func (s *taskService) Create(ctx context.Context, title, description string) (*domain.Task, error) {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      domain.TaskPending,
		Priority:    domain.PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) FindLatest(ctx context.Context, f repository.TaskFilter) (*domain.Task, error) {
	return s.tasks.FindLatest(ctx, f)
}

func (s *taskService) Update(ctx context.Context, id string, changes contract.TaskChanges) (*domain.Task, error) {
	return s.mutate(ctx, id, func(t *domain.Task, now time.Time) error {
		if changes.Title != nil {
			t.Title = strings.TrimSpace(*changes.Title)
		}
		if changes.Description != nil {
			t.Description = strings.TrimSpace(*changes.Description)
		}
		if changes.IsCompleted != nil && *changes.IsCompleted != t.IsCompleted {
			t.Toggle(now)
		}
		t.UpdatedAt = now
		return t.Validate()
	})
}

func (s *taskService) Complete(ctx context.Context, id string) (*domain.Task, error) {
	return s.mutate(ctx, id, func(t *domain.Task, now time.Time) error {
		t.MarkCompleted(now)
		return nil
	})
}

func (s *taskService) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	return s.mutate(ctx, id, func(t *domain.Task, now time.Time) error {
		t.Toggle(now)
		return nil
	})
}

// mutate reads, changes and writes one task inside a transaction.
func (s *taskService) mutate(ctx context.Context, id string, apply func(*domain.Task, time.Time) error) (*domain.Task, error) {
	var out *domain.Task
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(t, time.Now().UTC()); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) DeleteAll(ctx context.Context) (int64, error) {
	return s.tasks.DeleteAll(ctx)
}

func (s *taskService) CompleteAll(ctx context.Context) (int64, error) {
	return s.tasks.CompleteAll(ctx, time.Now().UTC())
}

func (s *taskService) RecentlyCompleted(ctx context.Context, limit int) ([]*domain.Task, error) {
	return s.tasks.ListRecentlyCompleted(ctx, limit)
}
