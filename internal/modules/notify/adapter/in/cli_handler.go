package in

import (
	"context"

	"focusflow/internal/modules/notify/dto"
	notifyin "focusflow/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Test(ctx context.Context) (dto.ProbeOutput, error) {
	return h.usecase.Test(ctx)
}

func (h CLIHandler) Plugins(ctx context.Context) ([]dto.PluginOutput, error) {
	return h.usecase.ListPlugins(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorCheckOutput, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Drain(ctx context.Context) {
	h.usecase.Drain(ctx)
}
