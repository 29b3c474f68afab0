package out

import (
	"context"

	focusout "focusflow/internal/modules/focus/port/out"
	inventoryin "focusflow/internal/modules/inventory/port/in"
)

// InventoryPassLedger reads break passes from the owned-item ledger.
type InventoryPassLedger struct {
	inventory inventoryin.Usecase
}

func NewInventoryPassLedger(inventory inventoryin.Usecase) focusout.PassLedger {
	return &InventoryPassLedger{inventory: inventory}
}

func (a *InventoryPassLedger) Passes(ctx context.Context, kind string) ([]string, error) {
	items, err := a.inventory.ListOf(ctx, kind)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

func (a *InventoryPassLedger) Consume(ctx context.Context, ownedID string) error {
	return a.inventory.Remove(ctx, ownedID)
}
