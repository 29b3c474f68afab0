package dto

type BalanceOutput struct {
	Coins int64
}
