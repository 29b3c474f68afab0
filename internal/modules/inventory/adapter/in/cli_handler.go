package in

import (
	"context"

	"focusflow/internal/modules/inventory/dto"
	inventoryin "focusflow/internal/modules/inventory/port/in"
)

type CLIHandler struct {
	usecase inventoryin.Usecase
}

func NewCLIHandler(usecase inventoryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Catalog(ctx context.Context) ([]dto.CatalogItemOutput, error) {
	return h.usecase.Catalog(ctx)
}

func (h CLIHandler) Buy(ctx context.Context, itemID string, quantity int) (dto.PurchaseOutput, error) {
	return h.usecase.Purchase(ctx, dto.PurchaseInput{ItemID: itemID, Quantity: quantity})
}

func (h CLIHandler) Owned(ctx context.Context, itemID string) ([]dto.OwnedItemOutput, error) {
	if itemID == "" {
		return h.usecase.ListAll(ctx)
	}
	return h.usecase.ListOf(ctx, itemID)
}

func (h CLIHandler) UseIcon(ctx context.Context, itemID string) error {
	return h.usecase.UseIcon(ctx, itemID)
}

func (h CLIHandler) ResetIcon(ctx context.Context) error {
	return h.usecase.ResetIcon(ctx)
}

func (h CLIHandler) CurrentIcon(ctx context.Context) (string, error) {
	return h.usecase.CurrentIcon(ctx)
}
