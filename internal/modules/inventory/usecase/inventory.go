package usecase

import (
	"context"

	"focusflow/internal/modules/inventory/domain"
	"focusflow/internal/modules/inventory/dto"
	inventoryin "focusflow/internal/modules/inventory/port/in"
	"focusflow/internal/modules/inventory/service"
)

type Interactor struct {
	ledger *service.LedgerService
	store  *service.StoreService
}

func NewInteractor(ledger *service.LedgerService, store *service.StoreService) inventoryin.Usecase {
	return &Interactor{ledger: ledger, store: store}
}

func (i *Interactor) Add(ctx context.Context, itemID string, price int64) (dto.OwnedItemOutput, error) {
	item, err := i.ledger.Add(ctx, itemID, price)
	if err != nil {
		return dto.OwnedItemOutput{}, err
	}
	return toOutput(item), nil
}

func (i *Interactor) CountOf(ctx context.Context, itemID string) (int, error) {
	return i.ledger.CountOf(ctx, itemID)
}

func (i *Interactor) ListOf(ctx context.Context, itemID string) ([]dto.OwnedItemOutput, error) {
	items, err := i.ledger.ListOf(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toOutputs(items), nil
}

func (i *Interactor) ListAll(ctx context.Context) ([]dto.OwnedItemOutput, error) {
	items, err := i.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(items), nil
}

func (i *Interactor) Remove(ctx context.Context, id string) error {
	return i.ledger.Remove(ctx, id)
}

func (i *Interactor) Catalog(ctx context.Context) ([]dto.CatalogItemOutput, error) {
	all, err := i.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogItemOutput, 0, len(domain.Catalog))
	for _, item := range domain.Catalog {
		out = append(out, dto.CatalogItemOutput{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Single:      item.Single,
			AppIcon:     item.AppIcon,
			Owned:       len(domain.Filter(all, item.ID)),
		})
	}
	return out, nil
}

func (i *Interactor) Purchase(ctx context.Context, input dto.PurchaseInput) (dto.PurchaseOutput, error) {
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	p, err := i.store.Purchase(ctx, input.ItemID, quantity)
	if err != nil {
		return dto.PurchaseOutput{}, err
	}
	return dto.PurchaseOutput{
		ItemID:    p.Item.ID,
		Quantity:  p.Quantity,
		Spent:     p.Spent,
		Remaining: p.Remaining,
		Items:     toOutputs(p.Owned),
	}, nil
}

func (i *Interactor) UseIcon(ctx context.Context, itemID string) error {
	return i.store.UseIcon(ctx, itemID)
}

func (i *Interactor) ResetIcon(ctx context.Context) error {
	return i.store.ResetIcon(ctx)
}

func (i *Interactor) CurrentIcon(ctx context.Context) (string, error) {
	return i.store.CurrentIcon(ctx)
}

func toOutput(item domain.OwnedItem) dto.OwnedItemOutput {
	return dto.OwnedItemOutput{
		ID:            item.ID,
		ItemID:        item.ItemID,
		PurchaseTime:  item.PurchaseTime,
		PurchasePrice: item.PurchasePrice,
	}
}

func toOutputs(items []domain.OwnedItem) []dto.OwnedItemOutput {
	out := make([]dto.OwnedItemOutput, 0, len(items))
	for _, item := range items {
		out = append(out, toOutput(item))
	}
	return out
}
