package filesystem_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picstash/picstash"
	"github.com/picstash/picstash/filesystem"
)

func newTestStore(t *testing.T) (*filesystem.Store, string) {
	t.Helper()

	dir := t.TempDir()
	root, err := os.OpenRoot(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	return filesystem.New(root), dir
}

func TestStore_PutGet(t *testing.T) {
	store, _ := newTestStore(t)

	info, err := store.Put(context.Background(), "1700000000000-photo.png", bytes.NewReader([]byte("payload")), picstash.PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"album": "summer"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size)

	got, body, err := store.Get(context.Background(), "1700000000000-photo.png")
	require.NoError(t, err)
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, int64(7), got.Size)
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, "summer", got.Metadata["album"])
}

func TestStore_Put_Overwrites(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Put(context.Background(), "k.png", bytes.NewReader([]byte("one")), picstash.PutOptions{ContentType: "image/png"})
	require.NoError(t, err)
	_, err = store.Put(context.Background(), "k.png", bytes.NewReader([]byte("second")), picstash.PutOptions{ContentType: "image/webp"})
	require.NoError(t, err)

	info, body, err := store.Get(context.Background(), "k.png")
	require.NoError(t, err)
	defer func() { _ = body.Close() }()

	assert.Equal(t, int64(6), info.Size)
	assert.Equal(t, "image/webp", info.ContentType)
}

func TestStore_Get_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, _, err := store.Get(context.Background(), "absent.png")
	assert.ErrorIs(t, err, picstash.ErrNotFound)
}

func TestStore_Get_NoSidecar(t *testing.T) {
	store, dir := newTestStore(t)

	// Object written out-of-band, without store bookkeeping.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.jpg"), []byte("x"), 0o600))

	info, body, err := store.Get(context.Background(), "legacy.jpg")
	require.NoError(t, err)
	defer func() { _ = body.Close() }()

	assert.Empty(t, info.ContentType)
	assert.Equal(t, int64(1), info.Size)
}

func TestStore_List(t *testing.T) {
	store, _ := newTestStore(t)

	for _, k := range []string{"b.png", "a.png", "c.png"} {
		_, err := store.Put(context.Background(), k, bytes.NewReader([]byte("xx")), picstash.PutOptions{ContentType: "image/png"})
		require.NoError(t, err)
	}

	page, err := store.List(context.Background(), picstash.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	// Sidecars must not appear as objects.
	keys := []string{page.Items[0].Key, page.Items[1].Key, page.Items[2].Key}
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, keys)
	assert.Equal(t, "image/png", page.Items[0].ContentType)
}

func TestStore_List_Pagination(t *testing.T) {
	store, _ := newTestStore(t)

	for _, k := range []string{"a.png", "b.png", "c.png"} {
		_, err := store.Put(context.Background(), k, bytes.NewReader([]byte("x")), picstash.PutOptions{})
		require.NoError(t, err)
	}

	page, err := store.List(context.Background(), picstash.ListQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "b.png", page.NextCursor)

	page, err = store.List(context.Background(), picstash.ListQuery{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c.png", page.Items[0].Key)
	assert.Empty(t, page.NextCursor)
}

func TestStore_Delete_Idempotent(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.Put(context.Background(), "k.png", bytes.NewReader([]byte("x")), picstash.PutOptions{ContentType: "image/png"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "k.png"))
	require.NoError(t, store.Delete(context.Background(), "k.png"))

	_, _, err = store.Get(context.Background(), "k.png")
	assert.ErrorIs(t, err, picstash.ErrNotFound)

	// The sidecar must be gone too.
	_, err = os.Stat(filepath.Join(dir, "k.png.meta"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_Put_RejectsBadKeys(t *testing.T) {
	store, _ := newTestStore(t)

	for _, key := range []string{"", "a/b.png", ".hidden", "x.png.meta"} {
		_, err := store.Put(context.Background(), key, bytes.NewReader(nil), picstash.PutOptions{})
		assert.ErrorIs(t, err, picstash.ErrInvalidInput, "key %q", key)
	}
}

func TestStore_CancelledContext(t *testing.T) {
	store, _ := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "k.png", bytes.NewReader([]byte("x")), picstash.PutOptions{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.List(ctx, picstash.ListQuery{})
	assert.ErrorIs(t, err, context.Canceled)
}
