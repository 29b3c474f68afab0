package in

import (
	"context"

	"focusflow/internal/modules/inventory/dto"
)

type Usecase interface {
	Add(ctx context.Context, itemID string, price int64) (dto.OwnedItemOutput, error)
	CountOf(ctx context.Context, itemID string) (int, error)
	ListOf(ctx context.Context, itemID string) ([]dto.OwnedItemOutput, error)
	ListAll(ctx context.Context) ([]dto.OwnedItemOutput, error)
	Remove(ctx context.Context, id string) error

	Catalog(ctx context.Context) ([]dto.CatalogItemOutput, error)
	Purchase(ctx context.Context, input dto.PurchaseInput) (dto.PurchaseOutput, error)
	UseIcon(ctx context.Context, itemID string) error
	ResetIcon(ctx context.Context) error
	CurrentIcon(ctx context.Context) (string, error)
}
