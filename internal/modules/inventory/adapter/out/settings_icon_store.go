package out

import (
	"context"

	inventoryout "focusflow/internal/modules/inventory/port/out"
	"focusflow/internal/platform/settings"
)

const appIconKey = "app-icon"

type SettingsIconStore struct {
	settings *settings.Settings
}

func NewSettingsIconStore(s *settings.Settings) inventoryout.IconStore {
	return &SettingsIconStore{settings: s}
}

func (s *SettingsIconStore) Current(ctx context.Context) (string, error) {
	return s.settings.String(ctx, appIconKey)
}

func (s *SettingsIconStore) Set(ctx context.Context, name string) error {
	if name == "" {
		return s.settings.Delete(ctx, appIconKey)
	}
	return s.settings.SetString(ctx, appIconKey, name)
}
