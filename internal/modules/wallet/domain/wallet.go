package domain

import (
	"fmt"

	apperrors "focusflow/internal/platform/errors"
)

type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// ValidateAmount rejects negative movements. Direction carries the sign.
func ValidateAmount(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount must be non-negative, got %d", apperrors.ErrInvalidInput, amount)
	}
	return nil
}

// Apply moves balance by amount. The result may be negative; a debit is
// never clamped at zero.
func Apply(balance int64, direction Direction, amount int64) int64 {
	if direction == DirectionDebit {
		return balance - amount
	}
	return balance + amount
}
