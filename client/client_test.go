package client_test

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picstash/picstash"
	"github.com/picstash/picstash/client"
	picstashhttp "github.com/picstash/picstash/http"
	"github.com/picstash/picstash/memory"
)

// newTestServer runs the real gateway over an in-memory store with a
// fixed clock, so uploaded keys are deterministic.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gallery := picstash.NewGallery(memory.New(), picstash.WithClock(func() time.Time {
		return time.UnixMilli(1700000000000)
	}))
	handler := picstashhttp.NewHandler(&picstashhttp.HandlerConfig{}, gallery)

	srv := httptest.NewServer(handler.Router())
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()

	c, err := client.New(&client.Config{Endpoint: srv.URL})
	require.NoError(t, err)
	return c
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestNew_NilConfig(t *testing.T) {
	_, err := client.New(nil)
	assert.ErrorIs(t, err, client.ErrConfigRequired)
}

func TestClient_Upload(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	path := writeTempFile(t, "photo.png", []byte("0123456789"))

	result, err := c.Upload(context.Background(), client.UploadOptions{
		LocalPath: path,
		Metadata:  map[string]string{"album": "summer"},
	})
	require.NoError(t, err)

	assert.Equal(t, "1700000000000-photo.png", result.ID)
	assert.Equal(t, srv.URL+"/api/images/1700000000000-photo.png", result.ImageURL)
	assert.Equal(t, []string{result.ImageURL}, result.Variants)
}

func TestClient_Upload_MissingFile(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	_, err := c.Upload(context.Background(), client.UploadOptions{
		LocalPath: filepath.Join(t.TempDir(), "missing.png"),
	})
	assert.Error(t, err)
}

func TestClient_Upload_EmptyPath(t *testing.T) {
	c, err := client.New(&client.Config{})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), client.UploadOptions{})
	assert.ErrorIs(t, err, client.ErrEmptyPath)
}

func TestClient_List(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	path := writeTempFile(t, "photo.jpg", []byte("jpegdata"))
	_, err := c.Upload(context.Background(), client.UploadOptions{LocalPath: path})
	require.NoError(t, err)

	result, err := c.List(context.Background(), client.ListOptions{})
	require.NoError(t, err)

	require.Len(t, result.Images, 1)
	img := result.Images[0]
	assert.Equal(t, "1700000000000-photo.jpg", img.ID)
	assert.Equal(t, "photo.jpg", img.Title)
	assert.Equal(t, "JPEG", img.Format)
	assert.Equal(t, "2023-11-14", img.UploadDate)
}

func TestClient_List_AllPaginates(t *testing.T) {
	store := memory.New()
	for _, key := range []string{"100-a.png", "200-b.png", "300-c.png"} {
		_, err := store.Put(context.Background(), key, strings.NewReader("png"), picstash.PutOptions{ContentType: "image/png"})
		require.NoError(t, err)
	}

	gallery := picstash.NewGallery(store)
	handler := picstashhttp.NewHandler(&picstashhttp.HandlerConfig{}, gallery)
	srv := httptest.NewServer(handler.Router())
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)

	result, err := c.List(context.Background(), client.ListOptions{Limit: 2, All: true})
	require.NoError(t, err)

	assert.Len(t, result.Images, 3)
	assert.Empty(t, result.NextCursor)
}

func TestClient_Delete(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	path := writeTempFile(t, "photo.png", []byte("x"))
	uploaded, err := c.Upload(context.Background(), client.UploadOptions{LocalPath: path})
	require.NoError(t, err)

	results, err := c.Delete(context.Background(), client.DeleteOptions{IDs: []string{uploaded.ID}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)

	listed, err := c.List(context.Background(), client.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, listed.Images)
}

func TestClient_Delete_NoIDs(t *testing.T) {
	c, err := client.New(&client.Config{})
	require.NoError(t, err)

	_, err = c.Delete(context.Background(), client.DeleteOptions{})
	assert.ErrorIs(t, err, client.ErrNoIDs)
}

func TestClient_Download_ToFile(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	path := writeTempFile(t, "photo.png", []byte("0123456789"))
	uploaded, err := c.Upload(context.Background(), client.UploadOptions{LocalPath: path})
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "saved.png")
	result, body, err := c.Download(context.Background(), client.DownloadOptions{
		ID:        uploaded.ID,
		LocalPath: target,
	})
	require.NoError(t, err)
	assert.Nil(t, body)
	assert.Equal(t, target, result.LocalPath)
	assert.Equal(t, int64(10), result.Size)

	saved, err := os.ReadFile(target) //#nosec G304 -- test-controlled path
	require.NoError(t, err)
	assert.Equal(t, []byte("0123456789"), saved)
}

func TestClient_Download_ToStdout(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	path := writeTempFile(t, "photo.png", []byte("0123456789"))
	uploaded, err := c.Upload(context.Background(), client.UploadOptions{LocalPath: path})
	require.NoError(t, err)

	result, body, err := c.Download(context.Background(), client.DownloadOptions{
		ID:        uploaded.ID,
		LocalPath: "-",
	})
	require.NoError(t, err)
	require.NotNil(t, body)
	defer func() { _ = body.Close() }()

	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, []byte("0123456789"), content)
	assert.Equal(t, "image/png", result.ContentType)
}

func TestClient_Download_NotFound(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv)

	_, _, err := c.Download(context.Background(), client.DownloadOptions{
		ID:        "1700000000000-missing.png",
		LocalPath: "-",
	})
	assert.ErrorContains(t, err, "404")
}
