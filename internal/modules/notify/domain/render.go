package domain

import (
	"fmt"
	"time"
)

const FocusStatus = "Focusing"

func Render(event Event) (Note, error) {
	switch event.Kind {
	case EventStarted:
		return Note{
			Kind:             event.Kind,
			Text:             fmt.Sprintf("Started focusing for %s, until %s.", minutes(event.Planned), event.EndsAt.Local().Format(time.Kitchen)),
			Status:           FocusStatus,
			StatusExpiration: event.EndsAt,
		}, nil
	case EventCompleted:
		return Note{
			Kind: event.Kind,
			Text: fmt.Sprintf("Completed %s of focus and earned %s.", minutes(event.Actual), coins(event.Coins)),
		}, nil
	case EventFailed:
		return Note{
			Kind: event.Kind,
			Text: fmt.Sprintf("Lost focus after %s and lost %s.", minutes(event.Actual), coins(-event.Coins)),
		}, nil
	default:
		return Note{}, fmt.Errorf("unknown event kind: %s", event.Kind)
	}
}

func minutes(d time.Duration) string {
	m := int64(d / time.Minute)
	switch {
	case m < 1:
		return "less than a minute"
	case m == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", m)
	}
}

func coins(n int64) string {
	if n == 1 {
		return "1 coin"
	}
	return fmt.Sprintf("%d coins", n)
}
