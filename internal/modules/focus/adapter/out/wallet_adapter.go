package out

import (
	"context"

	focusout "focusflow/internal/modules/focus/port/out"
	walletin "focusflow/internal/modules/wallet/port/in"
)

type WalletAdapter struct {
	wallet walletin.Usecase
}

func NewWalletAdapter(wallet walletin.Usecase) focusout.Wallet {
	return &WalletAdapter{wallet: wallet}
}

func (a *WalletAdapter) Balance(ctx context.Context) (int64, error) {
	out, err := a.wallet.Balance(ctx)
	return out.Coins, err
}

func (a *WalletAdapter) Credit(ctx context.Context, amount int64) (int64, error) {
	out, err := a.wallet.Credit(ctx, amount)
	return out.Coins, err
}

func (a *WalletAdapter) Debit(ctx context.Context, amount int64) (int64, error) {
	out, err := a.wallet.Debit(ctx, amount)
	return out.Coins, err
}
