package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focusflow/internal/modules/focus/domain"
	focusout "focusflow/internal/modules/focus/port/out"
	apperrors "focusflow/internal/platform/errors"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) focusout.SessionStore {
	return &SQLiteSessionStore{db: db}
}

func (s *SQLiteSessionStore) Insert(ctx context.Context, session domain.FocusSession) error {
	const stmt = `
INSERT INTO focus_sessions (id, start_date, duration, actual_duration, coins, failed, task_id)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.StartDate.UTC().Format(timeLayout),
		int64(session.PlannedDuration/time.Second),
		int64(session.ActualDuration/time.Second),
		session.CoinsDelta,
		session.Failed,
		nullable(session.TaskID),
	)
	if err != nil {
		return fmt.Errorf("insert focus session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM focus_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete focus session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete focus session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: focus session %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteSessionStore) Get(ctx context.Context, id string) (domain.FocusSession, error) {
	row := s.db.QueryRowContext(ctx, selectSessions+` WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FocusSession{}, fmt.Errorf("%w: focus session %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return domain.FocusSession{}, fmt.Errorf("get focus session: %w", err)
	}
	return session, nil
}

func (s *SQLiteSessionStore) List(ctx context.Context, limit int) ([]domain.FocusSession, error) {
	query := selectSessions + ` ORDER BY start_date DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list focus sessions: %w", err)
	}
	defer rows.Close()

	out := []domain.FocusSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan focus session: %w", err)
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list focus sessions: %w", err)
	}
	return out, nil
}

const selectSessions = `SELECT id, start_date, duration, actual_duration, coins, failed, task_id FROM focus_sessions`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (domain.FocusSession, error) {
	var (
		session         domain.FocusSession
		start           string
		planned, actual int64
		taskID          sql.NullString
	)
	if err := row.Scan(&session.ID, &start, &planned, &actual, &session.CoinsDelta, &session.Failed, &taskID); err != nil {
		return domain.FocusSession{}, err
	}
	startDate, err := time.Parse(timeLayout, start)
	if err != nil {
		return domain.FocusSession{}, fmt.Errorf("parse start date %q: %w", start, err)
	}
	session.StartDate = startDate
	session.PlannedDuration = time.Duration(planned) * time.Second
	session.ActualDuration = time.Duration(actual) * time.Second
	session.TaskID = taskID.String
	return session, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
