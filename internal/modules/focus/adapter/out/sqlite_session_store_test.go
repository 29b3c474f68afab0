package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	focusout "focusflow/internal/modules/focus/adapter/out"
	"focusflow/internal/modules/focus/domain"
	"focusflow/internal/platform/database"
	apperrors "focusflow/internal/platform/errors"
)

func TestSQLiteSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := database.Open(filepath.Join(t.TempDir(), "focusflow.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	store := focusout.NewSQLiteSessionStore(db)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	sessions := []domain.FocusSession{
		{ID: "a", StartDate: base, PlannedDuration: 30 * time.Minute, ActualDuration: 30 * time.Minute, CoinsDelta: 30},
		{ID: "b", StartDate: base.Add(2 * time.Hour), PlannedDuration: time.Hour, ActualDuration: 10 * time.Second, CoinsDelta: -51, Failed: true, TaskID: "task-1"},
		{ID: "c", StartDate: base.Add(time.Hour), PlannedDuration: time.Minute, ActualDuration: time.Minute, CoinsDelta: 1},
	}
	for _, s := range sessions {
		if err := store.Insert(ctx, s); err != nil {
			t.Fatalf("insert %s: %v", s.ID, err)
		}
	}

	list, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "b" || list[1].ID != "c" || list[2].ID != "a" {
		t.Fatalf("expected most recent first, got %+v", list)
	}
	last, err := store.List(ctx, 1)
	if err != nil || len(last) != 1 || last[0].ID != "b" {
		t.Fatalf("expected b as last session, got %+v err=%v", last, err)
	}

	got, err := store.Get(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Failed || got.CoinsDelta != -51 || got.TaskID != "task-1" || got.ActualDuration != 10*time.Second || !got.StartDate.Equal(base.Add(2*time.Hour)) {
		t.Fatalf("unexpected session %+v", got)
	}
	if a, _ := store.Get(ctx, "a"); a.TaskID != "" || a.Failed {
		t.Fatalf("unexpected session %+v", a)
	}

	if err := store.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "b"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := store.Delete(ctx, "b"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestSQLiteSessionStoreWrapsDriverErrors(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	store := focusout.NewSQLiteSessionStore(db)
	boom := errors.New("database is locked")

	mock.ExpectExec("INSERT INTO focus_sessions").WillReturnError(boom)
	mock.ExpectQuery("SELECT id, start_date").WillReturnError(boom)
	mock.ExpectQuery("SELECT id, start_date").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "duration", "actual_duration", "coins", "failed", "task_id"}).
			AddRow("x", "not a date", 60, 60, 1, false, nil))

	ctx := context.Background()
	if err := store.Insert(ctx, domain.FocusSession{ID: "x", StartDate: time.Now()}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
	if _, err := store.List(ctx, 1); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
	if _, err := store.List(ctx, 0); err == nil {
		t.Fatalf("expected a scan error for a malformed start date")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
