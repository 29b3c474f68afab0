package in

import (
	"context"
	"fmt"

	"focusflow/internal/modules/build/dto"
	buildin "focusflow/internal/modules/build/port/in"
	apperrors "focusflow/internal/platform/errors"
)

type CLIHandler struct {
	usecase buildin.Usecase
}

func NewCLIHandler(usecase buildin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Place takes exactly one of image or color.
func (h CLIHandler) Place(ctx context.Context, image, color string, width, height, x, y, z float64) (dto.ItemOutput, error) {
	input := dto.PlaceInput{Width: width, Height: height, OffsetX: x, OffsetY: y, ZIndex: z}
	switch {
	case image != "" && color != "":
		return dto.ItemOutput{}, fmt.Errorf("%w: choose either an image or a color", apperrors.ErrInvalidInput)
	case image != "":
		input.Kind, input.Name = "image", image
	case color != "":
		input.Kind, input.Name = "color", color
	default:
		return dto.ItemOutput{}, fmt.Errorf("%w: an image or a color is required", apperrors.ErrInvalidInput)
	}
	return h.usecase.Place(ctx, input)
}

func (h CLIHandler) Move(ctx context.Context, id string, x, y float64) (dto.ItemOutput, error) {
	return h.usecase.Move(ctx, dto.MoveInput{ID: id, OffsetX: x, OffsetY: y})
}

func (h CLIHandler) List(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}
