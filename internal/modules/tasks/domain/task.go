package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "focusflow/internal/platform/errors"
)

// Task is a local to-do that focus sessions may point at through task_id.
// A zero DueDate means no due date.
type Task struct {
	ID                string
	Name              string
	DueDate           time.Time
	EstimatedDuration time.Duration
	Completed         bool
	CreatedAt         time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: task name is required", apperrors.ErrInvalidInput)
	}
	if t.EstimatedDuration < 0 {
		return fmt.Errorf("%w: estimate must not be negative", apperrors.ErrInvalidInput)
	}
	return nil
}

func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

// Reminder is an item from the external reminders provider. It is never
// written back.
type Reminder struct {
	ID        string
	ListID    string
	Title     string
	Notes     string
	DueDate   time.Time
	Completed bool
}

type ReminderList struct {
	ID    string
	Title string
}
