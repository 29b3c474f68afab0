package out

import (
	"context"

	buildin "focusflow/internal/modules/build/port/in"
	focusout "focusflow/internal/modules/focus/port/out"
)

type BuildAdapter struct {
	build buildin.Usecase
}

func NewBuildAdapter(build buildin.Usecase) focusout.BuildClearer {
	return &BuildAdapter{build: build}
}

func (a *BuildAdapter) RequestClear(ctx context.Context) error {
	return a.build.RequestClear(ctx)
}
