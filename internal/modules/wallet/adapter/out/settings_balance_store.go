package out

import (
	"context"
	"fmt"

	walletout "focusflow/internal/modules/wallet/port/out"
	"focusflow/internal/platform/settings"
)

const coinsKey = "coins"

type SettingsBalanceStore struct {
	settings *settings.Settings
}

func NewSettingsBalanceStore(s *settings.Settings) walletout.BalanceStore {
	return &SettingsBalanceStore{settings: s}
}

func (s *SettingsBalanceStore) Load(ctx context.Context) (int64, error) {
	coins, err := s.settings.Int(ctx, coinsKey)
	if err != nil {
		return 0, fmt.Errorf("load coins: %w", err)
	}
	return coins, nil
}

func (s *SettingsBalanceStore) Save(ctx context.Context, coins int64) error {
	if err := s.settings.SetInt(ctx, coinsKey, coins); err != nil {
		return fmt.Errorf("save coins: %w", err)
	}
	return nil
}
