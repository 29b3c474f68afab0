package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "focusflow/internal/platform/errors"
)

type ContentKind string

const (
	ContentImage ContentKind = "image"
	ContentColor ContentKind = "color"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Item is one piece placed on the build canvas. Name holds the image name
// or the hex color depending on Kind.
type Item struct {
	ID       string
	Kind     ContentKind
	Name     string
	Width    float64
	Height   float64
	OffsetX  float64
	OffsetY  float64
	ZIndex   float64
	PlacedAt time.Time
}

func (i Item) Validate() error {
	switch i.Kind {
	case ContentImage:
		if strings.TrimSpace(i.Name) == "" {
			return fmt.Errorf("%w: image name is required", apperrors.ErrInvalidInput)
		}
		if i.Width < 0 || i.Height < 0 {
			return fmt.Errorf("%w: image size must not be negative", apperrors.ErrInvalidInput)
		}
	case ContentColor:
		if !hexColor.MatchString(i.Name) {
			return fmt.Errorf("%w: color must look like #RRGGBB", apperrors.ErrInvalidInput)
		}
		if i.Width <= 0 || i.Height <= 0 {
			return fmt.Errorf("%w: color blocks need a positive size", apperrors.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown content kind %q", apperrors.ErrInvalidInput, i.Kind)
	}
	return nil
}

// TopZ returns a z-index above every item in items.
func TopZ(items []Item) float64 {
	top := 0.0
	for _, item := range items {
		if item.ZIndex >= top {
			top = item.ZIndex + 1
		}
	}
	return top
}
