package in

import (
	"context"

	"focusflow/internal/modules/wallet/dto"
	walletin "focusflow/internal/modules/wallet/port/in"
)

type CLIHandler struct {
	usecase walletin.Usecase
}

func NewCLIHandler(usecase walletin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Balance(ctx context.Context) (dto.BalanceOutput, error) {
	return h.usecase.Balance(ctx)
}

func (h CLIHandler) Set(ctx context.Context, coins int64) (dto.BalanceOutput, error) {
	return h.usecase.Set(ctx, coins)
}
