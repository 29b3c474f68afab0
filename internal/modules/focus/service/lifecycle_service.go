package service

import (
	"context"
	"fmt"
	"time"

	"focusflow/internal/modules/focus/domain"
	focusout "focusflow/internal/modules/focus/port/out"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/id"
)

// LifecycleService owns the run state and the session history. It knows
// nothing about coins or passes; the interactor decides outcomes.
type LifecycleService struct {
	clock    clock.Clock
	idGen    id.Generator
	runs     focusout.RunStateStore
	sessions focusout.SessionStore
}

func NewLifecycleService(clock clock.Clock, idGen id.Generator, runs focusout.RunStateStore, sessions focusout.SessionStore) *LifecycleService {
	return &LifecycleService{clock: clock, idGen: idGen, runs: runs, sessions: sessions}
}

func (s *LifecycleService) Now() time.Time {
	return s.clock.Now()
}

func (s *LifecycleService) Run(ctx context.Context) (domain.Run, error) {
	run, err := s.runs.Load(ctx)
	if err != nil {
		return domain.Run{}, fmt.Errorf("load run state: %w", err)
	}
	return run, nil
}

func (s *LifecycleService) SaveRun(ctx context.Context, run domain.Run) error {
	if err := s.runs.Save(ctx, run); err != nil {
		return fmt.Errorf("save run state: %w", err)
	}
	return nil
}

// Record inserts the history entry for a resolved run.
func (s *LifecycleService) Record(ctx context.Context, start time.Time, run domain.Run, actual time.Duration, coins int64, failed bool) (domain.FocusSession, error) {
	session := domain.FocusSession{
		ID:              s.idGen.New(),
		StartDate:       start,
		PlannedDuration: run.Configured,
		ActualDuration:  actual,
		CoinsDelta:      coins,
		Failed:          failed,
		TaskID:          run.TaskID,
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return domain.FocusSession{}, err
	}
	return session, nil
}

func (s *LifecycleService) Forget(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func (s *LifecycleService) Session(ctx context.Context, id string) (domain.FocusSession, error) {
	return s.sessions.Get(ctx, id)
}

func (s *LifecycleService) Sessions(ctx context.Context, limit int) ([]domain.FocusSession, error) {
	return s.sessions.List(ctx, limit)
}
