package in

import (
	"context"

	"focusflow/internal/modules/tasks/dto"
)

type Usecase interface {
	AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskOutput, error)
	// ListTasks returns incomplete tasks only.
	ListTasks(ctx context.Context) ([]dto.TaskOutput, error)
	ToggleTask(ctx context.Context, id string) (dto.TaskOutput, error)
	DeleteTask(ctx context.Context, id string) error
	GetTask(ctx context.Context, id string) (dto.TaskOutput, error)

	// Reminders never fails. Missing permission, no selected list, or a
	// provider error all give an empty slice.
	Reminders(ctx context.Context) []dto.ReminderOutput
	ReminderLists(ctx context.Context) ([]dto.ReminderListOutput, error)
	ReminderAccess(ctx context.Context) (dto.AccessOutput, error)
	GrantReminders(ctx context.Context) (dto.AccessOutput, error)
	RevokeReminders(ctx context.Context) (dto.AccessOutput, error)
	SelectReminderList(ctx context.Context, name string) (dto.AccessOutput, error)
}
