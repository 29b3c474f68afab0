package service

import (
	"context"
	"sync"

	"focusflow/internal/modules/wallet/domain"
	walletout "focusflow/internal/modules/wallet/port/out"
)

type WalletService struct {
	mu       sync.Mutex
	store    walletout.BalanceStore
	recorder walletout.Recorder
}

func NewWalletService(store walletout.BalanceStore, recorder walletout.Recorder) *WalletService {
	return &WalletService{store: store, recorder: recorder}
}

func (s *WalletService) Read(ctx context.Context) (int64, error) {
	return s.store.Load(ctx)
}

// Move is a single read-modify-write of the persisted balance.
func (s *WalletService) Move(ctx context.Context, direction domain.Direction, amount int64) (int64, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	next := domain.Apply(balance, direction, amount)
	if err := s.store.Save(ctx, next); err != nil {
		return 0, err
	}
	if s.recorder != nil {
		s.recorder.CoinsMoved(string(direction), amount)
	}
	return next, nil
}

func (s *WalletService) Set(ctx context.Context, coins int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, coins); err != nil {
		return 0, err
	}
	return coins, nil
}
