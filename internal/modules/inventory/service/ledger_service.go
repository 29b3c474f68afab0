package service

import (
	"context"
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"focusflow/internal/modules/inventory/domain"
	inventoryout "focusflow/internal/modules/inventory/port/out"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/id"
)

// LedgerService keeps an in-memory view of the owned items. Writes go
// through the store with a fresh read first; Sync keeps the view in step
// with writes made elsewhere. The persisted list always wins.
type LedgerService struct {
	clock  clock.Clock
	idGen  id.Generator
	store  inventoryout.OwnedItemStore
	logger hclog.Logger

	mu     sync.RWMutex
	items  []domain.OwnedItem
	loaded bool
}

func NewLedgerService(clock clock.Clock, idGen id.Generator, store inventoryout.OwnedItemStore, logger hclog.Logger) *LedgerService {
	return &LedgerService{clock: clock, idGen: idGen, store: store, logger: logger}
}

func (s *LedgerService) Refresh(ctx context.Context) error {
	items, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Sync reloads the view on every store change until ctx is done.
func (s *LedgerService) Sync(ctx context.Context) {
	changes, cancel := s.store.Changes()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("reload owned items", "error", err)
			}
		}
	}
}

func (s *LedgerService) Add(ctx context.Context, itemID string, price int64) (domain.OwnedItem, error) {
	if itemID == "" {
		return domain.OwnedItem{}, fmt.Errorf("%w: item id is required", apperrors.ErrInvalidInput)
	}
	item := domain.OwnedItem{
		ID:            s.idGen.New(),
		ItemID:        itemID,
		PurchaseTime:  s.clock.Now(),
		PurchasePrice: price,
	}
	err := s.mutate(ctx, func(items []domain.OwnedItem) ([]domain.OwnedItem, error) {
		return append(items, item), nil
	})
	if err != nil {
		return domain.OwnedItem{}, err
	}
	return item, nil
}

func (s *LedgerService) Remove(ctx context.Context, ownedID string) error {
	return s.mutate(ctx, func(items []domain.OwnedItem) ([]domain.OwnedItem, error) {
		for i, item := range items {
			if item.ID == ownedID {
				return append(items[:i:i], items[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: owned item %s", apperrors.ErrNotFound, ownedID)
	})
}

func (s *LedgerService) CountOf(ctx context.Context, itemID string) (int, error) {
	items, err := s.ListOf(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *LedgerService) ListOf(ctx context.Context, itemID string) ([]domain.OwnedItem, error) {
	items, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Filter(items, itemID), nil
}

func (s *LedgerService) ListAll(ctx context.Context) ([]domain.OwnedItem, error) {
	return s.snapshot(ctx)
}

func (s *LedgerService) snapshot(ctx context.Context) ([]domain.OwnedItem, error) {
	s.mu.RLock()
	if s.loaded {
		out := append([]domain.OwnedItem(nil), s.items...)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OwnedItem(nil), s.items...), nil
}

func (s *LedgerService) mutate(ctx context.Context, fn func([]domain.OwnedItem) ([]domain.OwnedItem, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return err
	}
	s.items = next
	s.loaded = true
	return nil
}
