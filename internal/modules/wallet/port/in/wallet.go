package in

import (
	"context"

	"focusflow/internal/modules/wallet/dto"
)

type Usecase interface {
	Balance(ctx context.Context) (dto.BalanceOutput, error)
	Credit(ctx context.Context, amount int64) (dto.BalanceOutput, error)
	Debit(ctx context.Context, amount int64) (dto.BalanceOutput, error)
	Set(ctx context.Context, coins int64) (dto.BalanceOutput, error)
}
