package out

import (
	"context"
	"encoding/json"
	"fmt"

	"focusflow/internal/modules/inventory/domain"
	inventoryout "focusflow/internal/modules/inventory/port/out"
	"focusflow/internal/platform/settings"
)

const ownedItemsKey = "owned_items"

// SettingsOwnedItemStore persists the ledger as a JSON array under one key.
type SettingsOwnedItemStore struct {
	settings *settings.Settings
}

func NewSettingsOwnedItemStore(s *settings.Settings) inventoryout.OwnedItemStore {
	return &SettingsOwnedItemStore{settings: s}
}

func (s *SettingsOwnedItemStore) Load(ctx context.Context) ([]domain.OwnedItem, error) {
	raw, err := s.settings.Bytes(ctx, ownedItemsKey)
	if err != nil {
		return nil, fmt.Errorf("read owned items: %w", err)
	}
	items := []domain.OwnedItem{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode owned items: %w", err)
	}
	return items, nil
}

func (s *SettingsOwnedItemStore) Save(ctx context.Context, items []domain.OwnedItem) error {
	if items == nil {
		items = []domain.OwnedItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode owned items: %w", err)
	}
	if err := s.settings.SetBytes(ctx, ownedItemsKey, raw); err != nil {
		return fmt.Errorf("write owned items: %w", err)
	}
	return nil
}

func (s *SettingsOwnedItemStore) Changes() (<-chan struct{}, func()) {
	changes, cancel := s.settings.Subscribe(ownedItemsKey)
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for range changes {
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()
	return out, cancel
}
