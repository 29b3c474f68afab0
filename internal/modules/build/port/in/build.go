package in

import (
	"context"

	"focusflow/internal/modules/build/dto"
)

type Usecase interface {
	Place(ctx context.Context, input dto.PlaceInput) (dto.ItemOutput, error)
	Move(ctx context.Context, input dto.MoveInput) (dto.ItemOutput, error)
	List(ctx context.Context) (dto.ListOutput, error)
	Clear(ctx context.Context) error
	// RequestClear marks the canvas for clearing on its next read.
	RequestClear(ctx context.Context) error
}
