package in

import (
	"context"

	"focusflow/internal/modules/focus/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.OutcomeOutput, error)
	Tick(ctx context.Context) (dto.OutcomeOutput, error)
	Interrupt(ctx context.Context) (dto.OutcomeOutput, error)
	Return(ctx context.Context) (dto.OutcomeOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)

	LastSession(ctx context.Context) (dto.SessionOutput, error)
	ListSessions(ctx context.Context) ([]dto.SessionOutput, error)
	GetSession(ctx context.Context, id string) (dto.SessionOutput, error)
	DeleteSession(ctx context.Context, id string) error
}
