package out

import (
	"context"

	"focusflow/internal/modules/focus/domain"
)

type RunStateStore interface {
	Load(ctx context.Context) (domain.Run, error)
	Save(ctx context.Context, run domain.Run) error
}

type SessionStore interface {
	Insert(ctx context.Context, session domain.FocusSession) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.FocusSession, error)
	// List returns sessions most recent first. A limit of 0 means all.
	List(ctx context.Context, limit int) ([]domain.FocusSession, error)
}

type Wallet interface {
	Balance(ctx context.Context) (int64, error)
	Credit(ctx context.Context, amount int64) (int64, error)
	Debit(ctx context.Context, amount int64) (int64, error)
}

// PassLedger exposes the owned break passes of one kind in insertion order.
type PassLedger interface {
	Passes(ctx context.Context, kind string) ([]string, error)
	Consume(ctx context.Context, ownedID string) error
}

// Notifier is fire and forget. Implementations must not block.
type Notifier interface {
	Started(run domain.Run)
	Completed(session domain.FocusSession)
	Failed(session domain.FocusSession)
}

type BuildClearer interface {
	RequestClear(ctx context.Context) error
}

type Recorder interface {
	SessionResolved(outcome string)
	PassRedeemed(kind string)
}
