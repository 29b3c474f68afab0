package service

import (
	"context"
	"fmt"

	"focusflow/internal/modules/inventory/domain"
	inventoryout "focusflow/internal/modules/inventory/port/out"
	apperrors "focusflow/internal/platform/errors"
)

type StoreService struct {
	ledger *LedgerService
	wallet inventoryout.Wallet
	icons  inventoryout.IconStore
}

func NewStoreService(ledger *LedgerService, wallet inventoryout.Wallet, icons inventoryout.IconStore) *StoreService {
	return &StoreService{ledger: ledger, wallet: wallet, icons: icons}
}

type Purchase struct {
	Item      domain.CatalogItem
	Quantity  int
	Spent     int64
	Remaining int64
	Owned     []domain.OwnedItem
}

func (s *StoreService) Purchase(ctx context.Context, itemID string, quantity int) (Purchase, error) {
	item, ok := domain.FindItem(itemID)
	if !ok {
		return Purchase{}, fmt.Errorf("%w: store item %s", apperrors.ErrNotFound, itemID)
	}
	owned, err := s.ledger.CountOf(ctx, item.ID)
	if err != nil {
		return Purchase{}, err
	}
	balance, err := s.wallet.Balance(ctx)
	if err != nil {
		return Purchase{}, err
	}
	if err := item.CheckPurchase(owned, quantity, balance); err != nil {
		return Purchase{}, err
	}

	cost := item.Cost(quantity)
	remaining, err := s.wallet.Debit(ctx, cost)
	if err != nil {
		return Purchase{}, err
	}
	added := make([]domain.OwnedItem, 0, quantity)
	for i := 0; i < quantity; i++ {
		record, err := s.ledger.Add(ctx, item.ID, item.Price)
		if err != nil {
			refund := item.Cost(quantity - i)
			if _, refundErr := s.wallet.Credit(ctx, refund); refundErr != nil {
				return Purchase{}, fmt.Errorf("add owned item: %w (refund of %d failed: %v)", err, refund, refundErr)
			}
			return Purchase{}, fmt.Errorf("add owned item: %w", err)
		}
		added = append(added, record)
	}
	return Purchase{Item: item, Quantity: quantity, Spent: cost, Remaining: remaining, Owned: added}, nil
}

func (s *StoreService) UseIcon(ctx context.Context, itemID string) error {
	item, ok := domain.FindItem(itemID)
	if !ok {
		return fmt.Errorf("%w: store item %s", apperrors.ErrNotFound, itemID)
	}
	if item.AppIcon == "" {
		return fmt.Errorf("%w: %s is not an app icon", apperrors.ErrInvalidInput, itemID)
	}
	owned, err := s.ledger.CountOf(ctx, item.ID)
	if err != nil {
		return err
	}
	if owned == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotOwned, itemID)
	}
	return s.icons.Set(ctx, item.AppIcon)
}

func (s *StoreService) ResetIcon(ctx context.Context) error {
	return s.icons.Set(ctx, "")
}

func (s *StoreService) CurrentIcon(ctx context.Context) (string, error) {
	return s.icons.Current(ctx)
}
