package out

import (
	"focusflow/internal/modules/focus/domain"
	focusout "focusflow/internal/modules/focus/port/out"
	notifydto "focusflow/internal/modules/notify/dto"
	notifyin "focusflow/internal/modules/notify/port/in"
)

type NotifyAdapter struct {
	notify notifyin.Usecase
}

func NewNotifyAdapter(notify notifyin.Usecase) focusout.Notifier {
	return &NotifyAdapter{notify: notify}
}

func (a *NotifyAdapter) Started(run domain.Run) {
	a.notify.Publish(notifydto.Event{
		Kind:    notifydto.EventStarted,
		Planned: run.Configured,
		EndsAt:  run.EndsAt(),
	})
}

func (a *NotifyAdapter) Completed(session domain.FocusSession) {
	a.notify.Publish(sessionEvent(notifydto.EventCompleted, session))
}

func (a *NotifyAdapter) Failed(session domain.FocusSession) {
	a.notify.Publish(sessionEvent(notifydto.EventFailed, session))
}

func sessionEvent(kind string, session domain.FocusSession) notifydto.Event {
	return notifydto.Event{
		Kind:    kind,
		Planned: session.PlannedDuration,
		Actual:  session.ActualDuration,
		Coins:   session.CoinsDelta,
	}
}
