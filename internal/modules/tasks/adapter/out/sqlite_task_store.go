package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focusflow/internal/modules/tasks/domain"
	tasksout "focusflow/internal/modules/tasks/port/out"
	apperrors "focusflow/internal/platform/errors"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteTaskStore struct {
	db *sql.DB
}

func NewSQLiteTaskStore(db *sql.DB) tasksout.TaskStore {
	return &SQLiteTaskStore{db: db}
}

func (s *SQLiteTaskStore) Insert(ctx context.Context, task domain.Task) error {
	const stmt = `
INSERT INTO tasks (id, name, due_date, estimated_seconds, completed, created_at)
VALUES (?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		task.ID,
		task.Name,
		formatTime(task.DueDate),
		estimateSeconds(task.EstimatedDuration),
		task.Completed,
		task.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *SQLiteTaskStore) Update(ctx context.Context, task domain.Task) error {
	const stmt = `
UPDATE tasks SET name = ?, due_date = ?, estimated_seconds = ?, completed = ?
WHERE id = ?;
`
	res, err := s.db.ExecContext(ctx, stmt,
		task.Name,
		formatTime(task.DueDate),
		estimateSeconds(task.EstimatedDuration),
		task.Completed,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireRow(res, task.ID)
}

func (s *SQLiteTaskStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireRow(res, id)
}

func (s *SQLiteTaskStore) Get(ctx context.Context, id string) (domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx, selectTasks+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// ListIncomplete orders by due date with undated tasks last.
func (s *SQLiteTaskStore) ListIncomplete(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, selectTasks+` WHERE completed = 0 ORDER BY due_date IS NULL, due_date, created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

const selectTasks = `SELECT id, name, due_date, estimated_seconds, completed, created_at FROM tasks`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (domain.Task, error) {
	var (
		task     domain.Task
		due      sql.NullString
		estimate sql.NullInt64
		created  string
	)
	if err := row.Scan(&task.ID, &task.Name, &due, &estimate, &task.Completed, &created); err != nil {
		return domain.Task{}, err
	}
	if due.Valid && due.String != "" {
		parsed, err := time.Parse(timeLayout, due.String)
		if err != nil {
			return domain.Task{}, fmt.Errorf("parse due date %q: %w", due.String, err)
		}
		task.DueDate = parsed
	}
	createdAt, err := time.Parse(timeLayout, created)
	if err != nil {
		return domain.Task{}, fmt.Errorf("parse created at %q: %w", created, err)
	}
	task.CreatedAt = createdAt
	task.EstimatedDuration = time.Duration(estimate.Int64) * time.Second
	return task, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("task rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func formatTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timeLayout), Valid: true}
}

func estimateSeconds(d time.Duration) sql.NullInt64 {
	if d <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(d / time.Second), Valid: true}
}
