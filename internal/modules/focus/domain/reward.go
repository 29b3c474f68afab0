package domain

import (
	"fmt"
	"time"

	apperrors "focusflow/internal/platform/errors"
)

const (
	PassShort = "break-1"
	PassLong  = "break-5"
)

type BreakPass struct {
	Kind   string
	Window time.Duration
}

// BreakPasses is checked in order. The cheaper pass always wins when both
// windows cover an absence.
var BreakPasses = []BreakPass{
	{Kind: PassShort, Window: time.Minute},
	{Kind: PassLong, Window: 5 * time.Minute},
}

// SelectPass returns the first pass kind whose window covers distraction and
// that owned reports as available.
func SelectPass(distraction time.Duration, owned func(kind string) bool) (string, bool) {
	for _, pass := range BreakPasses {
		if distraction <= pass.Window && owned(pass.Kind) {
			return pass.Kind, true
		}
	}
	return "", false
}

// CoinsWon rounds up: any started minute of focus pays a coin.
func CoinsWon(focus time.Duration) int64 {
	secs := int64(focus / time.Second)
	if secs <= 0 {
		return 0
	}
	return (secs + 59) / 60
}

// CoinsLost is ceil((balance+1)/2). The balance may go negative; a loss is
// never negative.
func CoinsLost(balance int64) int64 {
	n := balance + 1
	if n <= 0 {
		return 0
	}
	return (n + 1) / 2
}

func ValidateDuration(d time.Duration) error {
	if d < MinimumDuration {
		return fmt.Errorf("%w: duration must be at least %s", apperrors.ErrInvalidInput, MinimumDuration)
	}
	if d%time.Minute != 0 {
		return fmt.Errorf("%w: duration must be a whole number of minutes", apperrors.ErrInvalidInput)
	}
	return nil
}
