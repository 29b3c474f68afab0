package in

import (
	"context"
	"fmt"
	"strings"
	"time"

	"focusflow/internal/modules/tasks/dto"
	tasksin "focusflow/internal/modules/tasks/port/in"
	apperrors "focusflow/internal/platform/errors"
)

type CLIHandler struct {
	usecase tasksin.Usecase
}

func NewCLIHandler(usecase tasksin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Add parses due as RFC 3339 or a bare date and estimate as a Go duration.
// Empty strings leave the field unset.
func (h CLIHandler) Add(ctx context.Context, name, due, estimate string) (dto.TaskOutput, error) {
	input := dto.AddTaskInput{Name: name}
	if due = strings.TrimSpace(due); due != "" {
		parsed, err := time.Parse(time.RFC3339, due)
		if err != nil {
			parsed, err = time.ParseInLocation(time.DateOnly, due, time.Local)
		}
		if err != nil {
			return dto.TaskOutput{}, fmt.Errorf("%w: due must be RFC3339 or YYYY-MM-DD", apperrors.ErrInvalidInput)
		}
		input.DueDate = parsed
	}
	if estimate = strings.TrimSpace(estimate); estimate != "" {
		d, err := time.ParseDuration(estimate)
		if err != nil {
			return dto.TaskOutput{}, fmt.Errorf("%w: estimate: %v", apperrors.ErrInvalidInput, err)
		}
		input.EstimatedDuration = d
	}
	return h.usecase.AddTask(ctx, input)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.TaskOutput, error) {
	return h.usecase.ListTasks(ctx)
}

func (h CLIHandler) Toggle(ctx context.Context, id string) (dto.TaskOutput, error) {
	return h.usecase.ToggleTask(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.DeleteTask(ctx, id)
}

func (h CLIHandler) Show(ctx context.Context, id string) (dto.TaskOutput, error) {
	return h.usecase.GetTask(ctx, id)
}

func (h CLIHandler) Reminders(ctx context.Context) []dto.ReminderOutput {
	return h.usecase.Reminders(ctx)
}

func (h CLIHandler) ReminderLists(ctx context.Context) ([]dto.ReminderListOutput, error) {
	return h.usecase.ReminderLists(ctx)
}

func (h CLIHandler) Access(ctx context.Context) (dto.AccessOutput, error) {
	return h.usecase.ReminderAccess(ctx)
}

func (h CLIHandler) Grant(ctx context.Context) (dto.AccessOutput, error) {
	return h.usecase.GrantReminders(ctx)
}

func (h CLIHandler) Revoke(ctx context.Context) (dto.AccessOutput, error) {
	return h.usecase.RevokeReminders(ctx)
}

func (h CLIHandler) Select(ctx context.Context, name string) (dto.AccessOutput, error) {
	return h.usecase.SelectReminderList(ctx, name)
}
