package out

import (
	"context"

	"focusflow/internal/modules/build/domain"
)

type ItemStore interface {
	Insert(ctx context.Context, item domain.Item) error
	Move(ctx context.Context, id string, x, y float64) error
	Get(ctx context.Context, id string) (domain.Item, error)
	// List orders items bottom to top.
	List(ctx context.Context) ([]domain.Item, error)
	DeleteAll(ctx context.Context) error
}

// ClearFlag is the pending "fall and clear" marker a failed session leaves.
type ClearFlag interface {
	Pending(ctx context.Context) (bool, error)
	SetPending(ctx context.Context, pending bool) error
}
