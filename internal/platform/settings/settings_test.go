package settings_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"focusflow/internal/platform/settings"
)

func TestTypedAccessorsDefaultWhenMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := settings.New(settings.NewMemoryStore())

	n, err := s.Int(ctx, "coins")
	require.NoError(t, err)
	require.Zero(t, n)

	b, err := s.Bool(ctx, "failing")
	require.NoError(t, err)
	require.False(t, b)

	ts, err := s.Time(ctx, "timer-start")
	require.NoError(t, err)
	require.True(t, ts.IsZero())
}

func TestTypedAccessorsRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := settings.New(settings.NewMemoryStore())
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, s.SetInt(ctx, "coins", -7))
	require.NoError(t, s.SetBool(ctx, "failing", true))
	require.NoError(t, s.SetTime(ctx, "timer-start", at))
	require.NoError(t, s.SetString(ctx, "slack-channel", "#focus"))

	n, _ := s.Int(ctx, "coins")
	require.EqualValues(t, -7, n)
	b, _ := s.Bool(ctx, "failing")
	require.True(t, b)
	ts, _ := s.Time(ctx, "timer-start")
	require.True(t, ts.Equal(at))
	str, _ := s.String(ctx, "slack-channel")
	require.Equal(t, "#focus", str)

	require.NoError(t, s.SetTime(ctx, "timer-start", time.Time{}))
	_, ok, err := s.Store().Get(ctx, "timer-start")
	require.NoError(t, err)
	require.False(t, ok, "zero instant must clear the key")
}

func TestIntRejectsGarbage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := settings.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "coins", "lots"))
	_, err := settings.New(store).Int(ctx, "coins")
	require.Error(t, err)
}

func TestSubscribeReceivesChangeAndCancelCloses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := settings.NewMemoryStore()
	ch, cancel := store.Subscribe("owned_items")

	require.NoError(t, store.Set(ctx, "coins", "1"))
	require.NoError(t, store.Set(ctx, "owned_items", "[]"))
	select {
	case change := <-ch:
		require.Equal(t, "owned_items", change.Key)
	case <-time.After(time.Second):
		t.Fatalf("expected change notification")
	}

	cancel()
	cancel()
	_, open := <-ch
	require.False(t, open)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".focusflow", "settings.yaml")

	first, err := settings.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "coins", "42"))

	second, err := settings.NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, "coins")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "42", v)

	require.NoError(t, second.Set(ctx, "slack-channel", "#general"))
	v, ok, err = first.Get(ctx, "slack-channel")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "#general", v)
	v, _, _ = first.Get(ctx, "coins")
	require.Equal(t, "42", v)
}

func TestFileStoreWatchAnnouncesExternalWrites(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	path := filepath.Join(t.TempDir(), "settings.yaml")

	store, err := settings.NewFileStore(path)
	require.NoError(t, err)
	ch, unsubscribe := store.Subscribe("owned_items")
	defer unsubscribe()
	go store.Watch(ctx, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("owned_items: '[{\"id\":\"a\"}]'\n"), 0o644))
	select {
	case change := <-ch:
		require.Equal(t, "owned_items", change.Key)
	case <-time.After(2 * time.Second):
		t.Fatalf("expected watch to announce external write")
	}
	v, ok, err := store.Get(ctx, "owned_items")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"a"}]`, v)
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("coins: [unterminated\n"), 0o644))
	_, err := settings.NewFileStore(path)
	require.Error(t, err)
}
