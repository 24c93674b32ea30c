package testutil

import (
	"time"

	"github.com/alexanderramin/parley/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind every fixture account's hash.
const TestPassword = "s3cret-pass"

type TaskOption func(*domain.Task)

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

func WithCompleted(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.MarkCompleted(at)
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.TaskPending,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type AccountOption func(*domain.Account)

func WithRole(r domain.Role) AccountOption {
	return func(a *domain.Account) {
		a.Role = r
	}
}

func WithName(n string) AccountOption {
	return func(a *domain.Account) {
		a.Name = n
	}
}

func WithInactive() AccountOption {
	return func(a *domain.Account) {
		a.IsActive = false
	}
}

func NewTestAccount(email string, opts ...AccountOption) *domain.Account {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	now := time.Now().UTC()
	a := &domain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "tester",
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
