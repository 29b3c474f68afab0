package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	walletout "focusflow/internal/modules/wallet/adapter/out"
	"focusflow/internal/modules/wallet/service"
	"focusflow/internal/modules/wallet/usecase"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/settings"
)

type recorder struct {
	mu    sync.Mutex
	moves map[string]int64
}

func (r *recorder) CoinsMoved(direction string, amount int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.moves == nil {
		r.moves = map[string]int64{}
	}
	r.moves[direction] += amount
}

func TestCreditDebitAndReadShareOneBalance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := settings.New(settings.NewMemoryStore())
	rec := &recorder{}
	uc := usecase.NewInteractor(service.NewWalletService(walletout.NewSettingsBalanceStore(s), rec))

	if out, err := uc.Credit(ctx, 30); err != nil || out.Coins != 30 {
		t.Fatalf("credit: coins=%d err=%v", out.Coins, err)
	}
	if out, err := uc.Debit(ctx, 51); err != nil || out.Coins != -21 {
		t.Fatalf("debit below zero must not clamp, coins=%d err=%v", out.Coins, err)
	}
	out, err := uc.Balance(ctx)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if out.Coins != -21 {
		t.Fatalf("expected -21, got %d", out.Coins)
	}
	stored, _ := s.Int(ctx, "coins")
	if stored != -21 {
		t.Fatalf("expected persisted scalar -21, got %d", stored)
	}
	if rec.moves["credit"] != 30 || rec.moves["debit"] != 51 {
		t.Fatalf("unexpected recorded moves: %v", rec.moves)
	}
}

func TestNegativeAmountsAreRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewWalletService(walletout.NewSettingsBalanceStore(settings.New(settings.NewMemoryStore())), nil))
	if _, err := uc.Credit(ctx, -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative credit, got %v", err)
	}
	if _, err := uc.Debit(ctx, -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative debit, got %v", err)
	}
}

func TestSetOverridesBalance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewWalletService(walletout.NewSettingsBalanceStore(settings.New(settings.NewMemoryStore())), nil))
	if _, err := uc.Set(ctx, 100); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := uc.Debit(ctx, 0); err != nil {
		t.Fatalf("zero debit is allowed: %v", err)
	}
	out, _ := uc.Balance(ctx)
	if out.Coins != 100 {
		t.Fatalf("expected 100, got %d", out.Coins)
	}
}

func TestConcurrentCreditsAreSerialized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewWalletService(walletout.NewSettingsBalanceStore(settings.New(settings.NewMemoryStore())), nil))
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.Credit(ctx, 2)
		}()
	}
	wg.Wait()
	out, _ := uc.Balance(ctx)
	if out.Coins != 100 {
		t.Fatalf("expected 100 after 50 concurrent credits, got %d", out.Coins)
	}
}
