package service

import (
	"context"
	"strings"
	"time"

	"focusflow/internal/modules/tasks/domain"
	tasksout "focusflow/internal/modules/tasks/port/out"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/id"
)

type TaskService struct {
	clock clock.Clock
	idGen id.Generator
	store tasksout.TaskStore
}

func NewTaskService(clock clock.Clock, idGen id.Generator, store tasksout.TaskStore) *TaskService {
	return &TaskService{clock: clock, idGen: idGen, store: store}
}

func (s *TaskService) Add(ctx context.Context, name string, due time.Time, estimate time.Duration) (domain.Task, error) {
	task := domain.Task{
		ID:                s.idGen.New(),
		Name:              strings.TrimSpace(name),
		DueDate:           due,
		EstimatedDuration: estimate,
		CreatedAt:         s.clock.Now(),
	}
	if err := task.Validate(); err != nil {
		return domain.Task{}, err
	}
	if err := s.store.Insert(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) Incomplete(ctx context.Context) ([]domain.Task, error) {
	return s.store.ListIncomplete(ctx)
}

func (s *TaskService) Toggle(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	task = task.Toggled()
	if err := s.store.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Delete removes the task only. Sessions that referenced it keep their
// task_id.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *TaskService) Get(ctx context.Context, id string) (domain.Task, error) {
	return s.store.Get(ctx, id)
}
