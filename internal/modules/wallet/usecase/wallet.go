package usecase

import (
	"context"

	"focusflow/internal/modules/wallet/domain"
	"focusflow/internal/modules/wallet/dto"
	walletin "focusflow/internal/modules/wallet/port/in"
	"focusflow/internal/modules/wallet/service"
)

type Interactor struct {
	svc *service.WalletService
}

func NewInteractor(svc *service.WalletService) walletin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Balance(ctx context.Context) (dto.BalanceOutput, error) {
	coins, err := i.svc.Read(ctx)
	if err != nil {
		return dto.BalanceOutput{}, err
	}
	return dto.BalanceOutput{Coins: coins}, nil
}

func (i *Interactor) Credit(ctx context.Context, amount int64) (dto.BalanceOutput, error) {
	coins, err := i.svc.Move(ctx, domain.DirectionCredit, amount)
	if err != nil {
		return dto.BalanceOutput{}, err
	}
	return dto.BalanceOutput{Coins: coins}, nil
}

func (i *Interactor) Debit(ctx context.Context, amount int64) (dto.BalanceOutput, error) {
	coins, err := i.svc.Move(ctx, domain.DirectionDebit, amount)
	if err != nil {
		return dto.BalanceOutput{}, err
	}
	return dto.BalanceOutput{Coins: coins}, nil
}

func (i *Interactor) Set(ctx context.Context, coins int64) (dto.BalanceOutput, error) {
	coins, err := i.svc.Set(ctx, coins)
	if err != nil {
		return dto.BalanceOutput{}, err
	}
	return dto.BalanceOutput{Coins: coins}, nil
}
