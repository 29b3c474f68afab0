package out

import "context"

type BalanceStore interface {
	Load(ctx context.Context) (int64, error)
	Save(ctx context.Context, coins int64) error
}

type Recorder interface {
	CoinsMoved(direction string, amount int64)
}
