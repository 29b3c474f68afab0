package out

import (
	"context"

	"focusflow/internal/modules/inventory/domain"
)

type OwnedItemStore interface {
	Load(ctx context.Context) ([]domain.OwnedItem, error)
	Save(ctx context.Context, items []domain.OwnedItem) error
	// Changes fires whenever the persisted list is rewritten.
	Changes() (<-chan struct{}, func())
}

type Wallet interface {
	Balance(ctx context.Context) (int64, error)
	Debit(ctx context.Context, amount int64) (int64, error)
	Credit(ctx context.Context, amount int64) (int64, error)
}

type IconStore interface {
	Current(ctx context.Context) (string, error)
	Set(ctx context.Context, name string) error
}
