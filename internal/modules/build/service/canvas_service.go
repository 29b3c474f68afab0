package service

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"focusflow/internal/modules/build/domain"
	buildout "focusflow/internal/modules/build/port/out"
	"focusflow/internal/platform/clock"
	"focusflow/internal/platform/id"
)

type CanvasService struct {
	clock  clock.Clock
	idGen  id.Generator
	items  buildout.ItemStore
	flag   buildout.ClearFlag
	logger hclog.Logger
}

func NewCanvasService(clock clock.Clock, idGen id.Generator, items buildout.ItemStore, flag buildout.ClearFlag, logger hclog.Logger) *CanvasService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &CanvasService{clock: clock, idGen: idGen, items: items, flag: flag, logger: logger}
}

// Place stacks item on top when it has no z-index of its own.
func (s *CanvasService) Place(ctx context.Context, item domain.Item) (domain.Item, error) {
	if err := item.Validate(); err != nil {
		return domain.Item{}, err
	}
	if item.ZIndex == 0 {
		existing, err := s.items.List(ctx)
		if err != nil {
			return domain.Item{}, err
		}
		item.ZIndex = domain.TopZ(existing)
	}
	item.ID = s.idGen.New()
	item.PlacedAt = s.clock.Now()
	if err := s.items.Insert(ctx, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (s *CanvasService) Move(ctx context.Context, id string, x, y float64) (domain.Item, error) {
	if err := s.items.Move(ctx, id, x, y); err != nil {
		return domain.Item{}, err
	}
	return s.items.Get(ctx, id)
}

// List consumes a pending clear first: items are deleted, then the flag is
// reset, so a crash in between clears again rather than keeping the items.
func (s *CanvasService) List(ctx context.Context) ([]domain.Item, bool, error) {
	pending, err := s.flag.Pending(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("read clear flag: %w", err)
	}
	if pending {
		if err := s.items.DeleteAll(ctx); err != nil {
			return nil, false, err
		}
		if err := s.flag.SetPending(ctx, false); err != nil {
			return nil, false, fmt.Errorf("reset clear flag: %w", err)
		}
		s.logger.Info("canvas fell after a failed session")
		return []domain.Item{}, true, nil
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, false, err
	}
	return items, false, nil
}

func (s *CanvasService) Clear(ctx context.Context) error {
	return s.items.DeleteAll(ctx)
}

func (s *CanvasService) RequestClear(ctx context.Context) error {
	if err := s.flag.SetPending(ctx, true); err != nil {
		return fmt.Errorf("set clear flag: %w", err)
	}
	return nil
}
