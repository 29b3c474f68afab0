package settings

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreKeepsCacheWhenWriteFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "coins", "7"))

	store.replace = func(string, string) error { return errors.New("disk full") }
	require.Error(t, store.Set(ctx, "coins", "99"))
	require.Error(t, store.Delete(ctx, "coins"))

	v, ok, err := store.Get(ctx, "coins")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "7", v)

	reopened, err := NewFileStore(store.path)
	require.NoError(t, err)
	v, _, err = reopened.Get(ctx, "coins")
	require.NoError(t, err)
	require.Equal(t, "7", v)
}
