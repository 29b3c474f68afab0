package usecase_test

import (
	"context"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	buildadapter "focusflow/internal/modules/build/adapter/out"
	"focusflow/internal/modules/build/dto"
	buildin "focusflow/internal/modules/build/port/in"
	"focusflow/internal/modules/build/service"
	"focusflow/internal/modules/build/usecase"
	"focusflow/internal/platform/database"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/settings"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqID struct{ n atomic.Int64 }

func (s *seqID) New() string { return "item-" + strconv.FormatInt(s.n.Add(1), 10) }

func newCanvas(t *testing.T) (buildin.Usecase, *settings.Settings) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "focusflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := settings.New(settings.NewMemoryStore())
	canvas := service.NewCanvasService(
		fixedClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		&seqID{},
		buildadapter.NewSQLiteItemStore(db),
		buildadapter.NewSettingsClearFlag(store),
		nil,
	)
	return usecase.NewInteractor(canvas), store
}

func TestPlaceStacksAndMoves(t *testing.T) {
	t.Parallel()
	uc, _ := newCanvas(t)
	ctx := context.Background()

	red, err := uc.Place(ctx, dto.PlaceInput{Kind: "color", Name: "#ff0000", Width: 100, Height: 200, OffsetX: 10, OffsetY: 50})
	require.NoError(t, err)
	require.Equal(t, 0.0, red.ZIndex)
	green, err := uc.Place(ctx, dto.PlaceInput{Kind: "color", Name: "#00ff00", Width: 100, Height: 200, OffsetX: 200, OffsetY: 170})
	require.NoError(t, err)
	require.Equal(t, 1.0, green.ZIndex)

	moved, err := uc.Move(ctx, dto.MoveInput{ID: red.ID, OffsetX: 5, OffsetY: 6})
	require.NoError(t, err)
	require.Equal(t, 5.0, moved.OffsetX)
	require.Equal(t, 6.0, moved.OffsetY)

	listed, err := uc.List(ctx)
	require.NoError(t, err)
	require.False(t, listed.Cleared)
	require.Len(t, listed.Items, 2)
	require.Equal(t, red.ID, listed.Items[0].ID)
	require.Equal(t, green.ID, listed.Items[1].ID)

	_, err = uc.Move(ctx, dto.MoveInput{ID: "missing"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = uc.Place(ctx, dto.PlaceInput{Kind: "color", Name: "blue", Width: 1, Height: 1})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestFailedSessionClearsCanvasOnNextRead(t *testing.T) {
	t.Parallel()
	uc, store := newCanvas(t)
	ctx := context.Background()

	_, err := uc.Place(ctx, dto.PlaceInput{Kind: "image", Name: "castle"})
	require.NoError(t, err)
	require.NoError(t, uc.RequestClear(ctx))

	pending, err := store.Bool(ctx, "build-clear-pending")
	require.NoError(t, err)
	require.True(t, pending)

	listed, err := uc.List(ctx)
	require.NoError(t, err)
	require.True(t, listed.Cleared)
	require.Empty(t, listed.Items)

	pending, err = store.Bool(ctx, "build-clear-pending")
	require.NoError(t, err)
	require.False(t, pending)

	_, err = uc.Place(ctx, dto.PlaceInput{Kind: "image", Name: "tower"})
	require.NoError(t, err)
	listed, err = uc.List(ctx)
	require.NoError(t, err)
	require.False(t, listed.Cleared)
	require.Len(t, listed.Items, 1)
}

func TestClearEmptiesCanvas(t *testing.T) {
	t.Parallel()
	uc, _ := newCanvas(t)
	ctx := context.Background()
	_, err := uc.Place(ctx, dto.PlaceInput{Kind: "image", Name: "castle"})
	require.NoError(t, err)
	require.NoError(t, uc.Clear(ctx))
	listed, err := uc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, listed.Items)
	require.False(t, listed.Cleared)
}
