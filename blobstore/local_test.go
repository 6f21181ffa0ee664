package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	blobName := "sym/bcsstk01.zst"
	data := []byte("hello world, this is a test blob")

	require.NoError(t, store.Put(ctx, blobName, data))

	_, err := os.Stat(filepath.Join(tmpDir, "sym", "bcsstk01.zst"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	n, err = blob.ReadAt(ctx, buf, int64(len(data)))
	require.ErrorIs(t, err, io.EOF)
	require.Zero(t, n)

	all, err := ReadAll(ctx, store, blobName)
	require.NoError(t, err)
	require.Equal(t, data, all)
}

func TestLocalBlobStore_List(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	for _, name := range []string{"sym/b.zst", "sym/a.zst", "unsym/c.zst", "test/d.zst", "README"} {
		require.NoError(t, store.Put(ctx, name, []byte(name)))
	}

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"README", "sym/a.zst", "sym/b.zst", "test/d.zst", "unsym/c.zst"}, names)

	names, err = store.List(ctx, "sym/")
	require.NoError(t, err)
	assert.Equal(t, []string{"sym/a.zst", "sym/b.zst"}, names)

	names, err = store.List(ctx, "uns")
	require.NoError(t, err)
	assert.Equal(t, []string{"unsym/c.zst"}, names)
}

func TestLocalBlobStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "missing.zst")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ReadAll(context.Background(), store, "missing.zst")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("payload")
	require.NoError(t, store.Put(ctx, "a/b.zst", data))
	data[0] = 'X'

	got, err := ReadAll(ctx, store, "a/b.zst")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got), "Put copies its input")

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b.zst"}, names)

	_, err = store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
