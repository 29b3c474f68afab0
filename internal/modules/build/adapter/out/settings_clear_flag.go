package out

import (
	"context"

	buildout "focusflow/internal/modules/build/port/out"
	"focusflow/internal/platform/settings"
)

const keyClearPending = "build-clear-pending"

type SettingsClearFlag struct {
	settings *settings.Settings
}

func NewSettingsClearFlag(s *settings.Settings) buildout.ClearFlag {
	return &SettingsClearFlag{settings: s}
}

func (f *SettingsClearFlag) Pending(ctx context.Context) (bool, error) {
	return f.settings.Bool(ctx, keyClearPending)
}

func (f *SettingsClearFlag) SetPending(ctx context.Context, pending bool) error {
	if !pending {
		return f.settings.Delete(ctx, keyClearPending)
	}
	return f.settings.SetBool(ctx, keyClearPending, true)
}
