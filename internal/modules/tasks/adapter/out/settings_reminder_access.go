package out

import (
	"context"

	tasksout "focusflow/internal/modules/tasks/port/out"
	"focusflow/internal/platform/settings"
)

const (
	keyRemindersGranted = "eventkit-tasks-synced"
	keyReminderList     = "reminder-list-id"
)

type SettingsReminderAccess struct {
	settings *settings.Settings
}

func NewSettingsReminderAccess(s *settings.Settings) tasksout.ReminderAccess {
	return &SettingsReminderAccess{settings: s}
}

func (a *SettingsReminderAccess) Granted(ctx context.Context) (bool, error) {
	return a.settings.Bool(ctx, keyRemindersGranted)
}

func (a *SettingsReminderAccess) SetGranted(ctx context.Context, granted bool) error {
	return a.settings.SetBool(ctx, keyRemindersGranted, granted)
}

func (a *SettingsReminderAccess) SelectedList(ctx context.Context) (string, error) {
	return a.settings.String(ctx, keyReminderList)
}

func (a *SettingsReminderAccess) SelectList(ctx context.Context, listID string) error {
	if listID == "" {
		return a.settings.Delete(ctx, keyReminderList)
	}
	return a.settings.SetString(ctx, keyReminderList, listID)
}
