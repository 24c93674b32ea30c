package app

import (
	"time"

	"github.com/alexanderramin/parley/internal/domain"
)

// TaskView is the wire shape of a task.
type TaskView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewTaskView(t *domain.Task) TaskView {
	return TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTaskViews(tasks []*domain.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewTaskView(t))
	}
	return views
}

// AccountView is the wire shape of an account. It has no password field.
type AccountView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewAccountView(a *domain.Account) AccountView {
	return AccountView{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      string(a.Role),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewAccountViews(accounts []*domain.Account) []AccountView {
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, NewAccountView(a))
	}
	return views
}
