package in

import (
	"context"
	"time"

	focusdto "focusflow/internal/modules/focus/dto"
	focusin "focusflow/internal/modules/focus/port/in"
)

type CLIHandler struct {
	usecase focusin.Usecase
}

func NewCLIHandler(usecase focusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, minutes int, taskID string) (focusdto.OutcomeOutput, error) {
	return h.usecase.Start(ctx, focusdto.StartInput{Duration: time.Duration(minutes) * time.Minute, TaskID: taskID})
}

func (h CLIHandler) Tick(ctx context.Context) (focusdto.OutcomeOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) Interrupt(ctx context.Context) (focusdto.OutcomeOutput, error) {
	return h.usecase.Interrupt(ctx)
}

func (h CLIHandler) Return(ctx context.Context) (focusdto.OutcomeOutput, error) {
	return h.usecase.Return(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (focusdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Sessions(ctx context.Context) ([]focusdto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx)
}

func (h CLIHandler) Last(ctx context.Context) (focusdto.SessionOutput, error) {
	return h.usecase.LastSession(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id string) (focusdto.SessionOutput, error) {
	return h.usecase.GetSession(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.DeleteSession(ctx, id)
}
