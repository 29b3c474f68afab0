package out

import (
	"context"
	"errors"
	"fmt"
	"time"

	"focusflow/internal/modules/focus/domain"
	focusout "focusflow/internal/modules/focus/port/out"
	"focusflow/internal/platform/settings"
)

const (
	keyTimerStart          = "timer-start"
	keyTimerSetting        = "timer-setting"
	keyTimerDistraction    = "timer-distraction"
	keyTimerTask           = "timer-task"
	keyFailing             = "failing"
	keyFailingInstant      = "failing-instant"
	keyFailingSessionStart = "failing-session-start"

	defaultSetting = 30 * time.Minute
)

var runKeys = []string{
	keyTimerStart,
	keyTimerSetting,
	keyTimerDistraction,
	keyTimerTask,
	keyFailing,
	keyFailingInstant,
	keyFailingSessionStart,
}

// SettingsRunStateStore keeps the run across restarts, one settings key per
// field.
type SettingsRunStateStore struct {
	settings *settings.Settings
}

func NewSettingsRunStateStore(s *settings.Settings) focusout.RunStateStore {
	return &SettingsRunStateStore{settings: s}
}

func (s *SettingsRunStateStore) Load(ctx context.Context) (domain.Run, error) {
	var (
		run domain.Run
		err error
	)
	if run.TimerStart, err = s.settings.Time(ctx, keyTimerStart); err != nil {
		return domain.Run{}, err
	}
	setting, err := s.settings.Int(ctx, keyTimerSetting)
	if err != nil {
		return domain.Run{}, err
	}
	run.Configured = time.Duration(setting) * time.Second
	if run.Configured <= 0 {
		run.Configured = defaultSetting
	}
	distraction, err := s.settings.Int(ctx, keyTimerDistraction)
	if err != nil {
		return domain.Run{}, err
	}
	run.AccumulatedDistraction = time.Duration(distraction) * time.Second
	if run.TaskID, err = s.settings.String(ctx, keyTimerTask); err != nil {
		return domain.Run{}, err
	}
	if run.Failing, err = s.settings.Bool(ctx, keyFailing); err != nil {
		return domain.Run{}, err
	}
	if run.FailingInstant, err = s.settings.Time(ctx, keyFailingInstant); err != nil {
		return domain.Run{}, err
	}
	if run.FailingSessionStart, err = s.settings.Time(ctx, keyFailingSessionStart); err != nil {
		return domain.Run{}, err
	}
	if run.Failing && (run.FailingInstant.IsZero() || run.FailingSessionStart.IsZero()) {
		return domain.Run{}, fmt.Errorf("run state is failing without its instants")
	}
	return run, nil
}

// Save writes the data keys first and the phase markers last, so every
// prefix of the writes still loads as the previous phase. When a write fails
// the keys already written are put back to their previous values.
func (s *SettingsRunStateStore) Save(ctx context.Context, run domain.Run) error {
	store := s.settings.Store()
	previous := make(map[string]*string, len(runKeys))
	for _, key := range runKeys {
		v, ok, err := store.Get(ctx, key)
		if err != nil {
			return err
		}
		if ok {
			previous[key] = &v
		}
	}

	type write struct {
		key string
		fn  func() error
	}
	instants := []write{
		{keyFailingInstant, func() error { return s.settings.SetTime(ctx, keyFailingInstant, run.FailingInstant) }},
		{keyFailingSessionStart, func() error { return s.settings.SetTime(ctx, keyFailingSessionStart, run.FailingSessionStart) }},
	}
	start := write{keyTimerStart, func() error { return s.settings.SetTime(ctx, keyTimerStart, run.TimerStart) }}
	failing := write{keyFailing, func() error { return s.settings.SetBool(ctx, keyFailing, run.Failing) }}

	writes := []write{
		{keyTimerSetting, func() error { return s.settings.SetInt(ctx, keyTimerSetting, int64(run.Configured/time.Second)) }},
		{keyTimerDistraction, func() error {
			return s.settings.SetInt(ctx, keyTimerDistraction, int64(run.AccumulatedDistraction/time.Second))
		}},
		{keyTimerTask, func() error { return s.setOptional(ctx, keyTimerTask, run.TaskID) }},
	}
	// The failing flag outranks the start key, so it flips first when entering
	// the grace window and last when leaving it.
	if run.Failing {
		writes = append(writes, instants...)
		writes = append(writes, failing, start)
	} else {
		writes = append(writes, start, failing)
		writes = append(writes, instants...)
	}

	for n, w := range writes {
		if err := w.fn(); err != nil {
			touched := make([]string, 0, n+1)
			for _, done := range writes[:n+1] {
				touched = append(touched, done.key)
			}
			if restoreErr := s.restore(ctx, touched, previous); restoreErr != nil {
				return errors.Join(err, fmt.Errorf("restore run state: %w", restoreErr))
			}
			return err
		}
	}
	return nil
}

func (s *SettingsRunStateStore) restore(ctx context.Context, keys []string, previous map[string]*string) error {
	store := s.settings.Store()
	var errs []error
	for i := len(keys) - 1; i >= 0; i-- {
		key := keys[i]
		var err error
		if v := previous[key]; v != nil {
			err = store.Set(ctx, key, *v)
		} else {
			err = store.Delete(ctx, key)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *SettingsRunStateStore) setOptional(ctx context.Context, key, value string) error {
	if value == "" {
		return s.settings.Delete(ctx, key)
	}
	return s.settings.SetString(ctx, key, value)
}
