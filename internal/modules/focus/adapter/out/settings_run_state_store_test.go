package out_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	focusout "focusflow/internal/modules/focus/adapter/out"
	"focusflow/internal/modules/focus/domain"
	"focusflow/internal/platform/settings"
)

func TestRunStateDefaultsToIdleThirtyMinutes(t *testing.T) {
	t.Parallel()
	store := focusout.NewSettingsRunStateStore(settings.New(settings.NewMemoryStore()))
	run, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.PhaseIdle, run.Phase())
	require.Equal(t, 30*time.Minute, run.Configured)
}

func TestRunStateRoundTripsThroughSettingsKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := settings.New(settings.NewMemoryStore())
	store := focusout.NewSettingsRunStateStore(s)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	failing := domain.Run{
		Configured:             25 * time.Minute,
		AccumulatedDistraction: 45 * time.Second,
		Failing:                true,
		FailingInstant:         start.Add(10 * time.Minute),
		FailingSessionStart:    start,
		TaskID:                 "task-9",
	}
	require.NoError(t, store.Save(ctx, failing))

	setting, err := s.Int(ctx, "timer-setting")
	require.NoError(t, err)
	require.Equal(t, int64(1500), setting)
	flag, err := s.Bool(ctx, "failing")
	require.NoError(t, err)
	require.True(t, flag)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PhaseFailingGrace, got.Phase())
	require.True(t, got.FailingInstant.Equal(failing.FailingInstant))
	require.True(t, got.FailingSessionStart.Equal(start))
	require.True(t, got.TimerStart.IsZero())
	require.Equal(t, 45*time.Second, got.AccumulatedDistraction)
	require.Equal(t, "task-9", got.TaskID)

	require.NoError(t, store.Save(ctx, got.Idle()))
	idle, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PhaseIdle, idle.Phase())
	require.Equal(t, 25*time.Minute, idle.Configured)
	require.Empty(t, idle.TaskID)
}

func TestRunStateRejectsHalfWrittenGraceWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := settings.New(settings.NewMemoryStore())
	require.NoError(t, s.SetBool(ctx, "failing", true))
	_, err := focusout.NewSettingsRunStateStore(s).Load(ctx)
	require.Error(t, err)
}

// flakyStore fails the next write of one key.
type flakyStore struct {
	settings.Store
	mu  sync.Mutex
	key string
}

func (f *flakyStore) failNext(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.key = key
}

func (f *flakyStore) trip(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.key != "" && f.key == key {
		f.key = ""
		return errors.New("disk full")
	}
	return nil
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	if err := f.trip(key); err != nil {
		return err
	}
	return f.Store.Set(ctx, key, value)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if err := f.trip(key); err != nil {
		return err
	}
	return f.Store.Delete(ctx, key)
}

func TestFailedSaveLeavesPreviousRunInPlace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	failing := domain.Run{
		Configured:             time.Minute,
		AccumulatedDistraction: 5 * time.Second,
		Failing:                true,
		FailingInstant:         start.Add(10 * time.Second),
		FailingSessionStart:    start,
	}

	for _, key := range []string{"timer-distraction", "timer-start", "failing", "failing-instant"} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			backend := &flakyStore{Store: settings.NewMemoryStore()}
			store := focusout.NewSettingsRunStateStore(settings.New(backend))
			require.NoError(t, store.Save(ctx, failing))

			backend.failNext(key)
			resumed := failing.Redeemed(40 * time.Second)
			require.Error(t, store.Save(ctx, resumed))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, domain.PhaseFailingGrace, got.Phase())
			require.Equal(t, 5*time.Second, got.AccumulatedDistraction)
			require.True(t, got.FailingInstant.Equal(failing.FailingInstant))
			require.True(t, got.TimerStart.IsZero())

			require.NoError(t, store.Save(ctx, resumed))
			got, err = store.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, domain.PhaseRunning, got.Phase())
			require.Equal(t, 45*time.Second, got.AccumulatedDistraction)
		})
	}
}

func TestEnteringGraceWindowFlipsFailingBeforeClearingStart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &flakyStore{Store: settings.NewMemoryStore()}
	store := focusout.NewSettingsRunStateStore(settings.New(backend))
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	running := domain.Run{TimerStart: start, Configured: time.Minute}
	require.NoError(t, store.Save(ctx, running))

	backend.failNext("timer-start")
	require.Error(t, store.Save(ctx, running.Interrupted(start.Add(5*time.Second))))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PhaseRunning, got.Phase())
	require.True(t, got.TimerStart.Equal(start))
	require.True(t, got.FailingInstant.IsZero())
}
