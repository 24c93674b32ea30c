package domain

import (
	"strings"
	"time"
)

type Task struct {
	ID          string
	Title       string
	Description string
	IsCompleted bool
	Status      TaskStatus
	Priority    TaskPriority
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarkCompleted flips the task into its completed state at the given instant.
func (t *Task) MarkCompleted(at time.Time) {
	t.IsCompleted = true
	t.Status = TaskCompleted
	t.CompletedAt = &at
	t.UpdatedAt = at
}

// Reopen reverses MarkCompleted.
func (t *Task) Reopen(at time.Time) {
	t.IsCompleted = false
	t.Status = TaskPending
	t.CompletedAt = nil
	t.UpdatedAt = at
}

// Toggle flips the completion state.
func (t *Task) Toggle(at time.Time) {
	if t.IsCompleted {
		t.Reopen(at)
		return
	}
	t.MarkCompleted(at)
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Message: "Title is required"}
	}
	if t.Priority != "" && !ValidPriorities[string(t.Priority)] {
		return &ValidationError{Field: "priority", Message: "priority must be low, medium or high"}
	}
	return nil
}
