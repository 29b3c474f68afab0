package usecase

import (
	"context"

	"focusflow/internal/modules/tasks/domain"
	"focusflow/internal/modules/tasks/dto"
	tasksin "focusflow/internal/modules/tasks/port/in"
	"focusflow/internal/modules/tasks/service"
)

type Interactor struct {
	tasks     *service.TaskService
	reminders *service.ReminderService
}

func NewInteractor(tasks *service.TaskService, reminders *service.ReminderService) tasksin.Usecase {
	return &Interactor{tasks: tasks, reminders: reminders}
}

func (i *Interactor) AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskOutput, error) {
	task, err := i.tasks.Add(ctx, input.Name, input.DueDate, input.EstimatedDuration)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toTask(task), nil
}

func (i *Interactor) ListTasks(ctx context.Context) ([]dto.TaskOutput, error) {
	tasks, err := i.tasks.Incomplete(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTask(task))
	}
	return out, nil
}

func (i *Interactor) ToggleTask(ctx context.Context, id string) (dto.TaskOutput, error) {
	task, err := i.tasks.Toggle(ctx, id)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toTask(task), nil
}

func (i *Interactor) DeleteTask(ctx context.Context, id string) error {
	return i.tasks.Delete(ctx, id)
}

func (i *Interactor) GetTask(ctx context.Context, id string) (dto.TaskOutput, error) {
	task, err := i.tasks.Get(ctx, id)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return toTask(task), nil
}

func (i *Interactor) Reminders(ctx context.Context) []dto.ReminderOutput {
	reminders := i.reminders.Reminders(ctx)
	out := make([]dto.ReminderOutput, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, dto.ReminderOutput{
			ID:        r.ID,
			ListID:    r.ListID,
			Title:     r.Title,
			Notes:     r.Notes,
			DueDate:   r.DueDate,
			Completed: r.Completed,
		})
	}
	return out
}

func (i *Interactor) ReminderLists(ctx context.Context) ([]dto.ReminderListOutput, error) {
	lists, err := i.reminders.Lists(ctx)
	if err != nil {
		return nil, err
	}
	_, selected, err := i.reminders.Access(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReminderListOutput, 0, len(lists))
	for _, l := range lists {
		out = append(out, dto.ReminderListOutput{ID: l.ID, Title: l.Title, Selected: l.ID == selected})
	}
	return out, nil
}

func (i *Interactor) ReminderAccess(ctx context.Context) (dto.AccessOutput, error) {
	granted, listID, err := i.reminders.Access(ctx)
	if err != nil {
		return dto.AccessOutput{}, err
	}
	return dto.AccessOutput{Granted: granted, ListID: listID}, nil
}

func (i *Interactor) GrantReminders(ctx context.Context) (dto.AccessOutput, error) {
	if err := i.reminders.Grant(ctx); err != nil {
		return dto.AccessOutput{}, err
	}
	return i.ReminderAccess(ctx)
}

func (i *Interactor) RevokeReminders(ctx context.Context) (dto.AccessOutput, error) {
	if err := i.reminders.Revoke(ctx); err != nil {
		return dto.AccessOutput{}, err
	}
	return i.ReminderAccess(ctx)
}

func (i *Interactor) SelectReminderList(ctx context.Context, name string) (dto.AccessOutput, error) {
	if _, err := i.reminders.Select(ctx, name); err != nil {
		return dto.AccessOutput{}, err
	}
	return i.ReminderAccess(ctx)
}

func toTask(task domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		ID:                task.ID,
		Name:              task.Name,
		DueDate:           task.DueDate,
		EstimatedDuration: task.EstimatedDuration,
		Completed:         task.Completed,
	}
}
