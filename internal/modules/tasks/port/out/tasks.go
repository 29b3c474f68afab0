package out

import (
	"context"

	"focusflow/internal/modules/tasks/domain"
)

type TaskStore interface {
	Insert(ctx context.Context, task domain.Task) error
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Task, error)
	ListIncomplete(ctx context.Context) ([]domain.Task, error)
}

type ReminderSource interface {
	Lists(ctx context.Context) ([]domain.ReminderList, error)
	Reminders(ctx context.Context, listID string) ([]domain.Reminder, error)
}

// ReminderAccess holds the permission flag and the selected list.
type ReminderAccess interface {
	Granted(ctx context.Context) (bool, error)
	SetGranted(ctx context.Context, granted bool) error
	SelectedList(ctx context.Context) (string, error)
	SelectList(ctx context.Context, listID string) error
}
