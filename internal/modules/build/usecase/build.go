package usecase

import (
	"context"

	"focusflow/internal/modules/build/domain"
	"focusflow/internal/modules/build/dto"
	buildin "focusflow/internal/modules/build/port/in"
	"focusflow/internal/modules/build/service"
)

type Interactor struct {
	canvas *service.CanvasService
}

func NewInteractor(canvas *service.CanvasService) buildin.Usecase {
	return &Interactor{canvas: canvas}
}

func (i *Interactor) Place(ctx context.Context, input dto.PlaceInput) (dto.ItemOutput, error) {
	item, err := i.canvas.Place(ctx, domain.Item{
		Kind:    domain.ContentKind(input.Kind),
		Name:    input.Name,
		Width:   input.Width,
		Height:  input.Height,
		OffsetX: input.OffsetX,
		OffsetY: input.OffsetY,
		ZIndex:  input.ZIndex,
	})
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return toOutput(item), nil
}

func (i *Interactor) Move(ctx context.Context, input dto.MoveInput) (dto.ItemOutput, error) {
	item, err := i.canvas.Move(ctx, input.ID, input.OffsetX, input.OffsetY)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return toOutput(item), nil
}

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	items, cleared, err := i.canvas.List(ctx)
	if err != nil {
		return dto.ListOutput{}, err
	}
	out := dto.ListOutput{Items: make([]dto.ItemOutput, 0, len(items)), Cleared: cleared}
	for _, item := range items {
		out.Items = append(out.Items, toOutput(item))
	}
	return out, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.canvas.Clear(ctx)
}

func (i *Interactor) RequestClear(ctx context.Context) error {
	return i.canvas.RequestClear(ctx)
}

func toOutput(item domain.Item) dto.ItemOutput {
	return dto.ItemOutput{
		ID:       item.ID,
		Kind:     string(item.Kind),
		Name:     item.Name,
		Width:    item.Width,
		Height:   item.Height,
		OffsetX:  item.OffsetX,
		OffsetY:  item.OffsetY,
		ZIndex:   item.ZIndex,
		PlacedAt: item.PlacedAt,
	}
}
