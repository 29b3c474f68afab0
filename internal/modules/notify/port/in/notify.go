package in

import (
	"context"

	"focusflow/internal/modules/notify/dto"
)

type Usecase interface {
	// Publish dispatches event to every sink and returns at once.
	Publish(event dto.Event)
	// Drain waits for in-flight dispatches until ctx is done.
	Drain(ctx context.Context)
	// Test posts a probe message and reports what went wrong, if anything.
	Test(ctx context.Context) (dto.ProbeOutput, error)

	ListPlugins(ctx context.Context) ([]dto.PluginOutput, error)
	Doctor(ctx context.Context) ([]dto.DoctorCheckOutput, error)
}
