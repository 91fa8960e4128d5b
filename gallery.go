package picstash

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ObjectStore is the adapter over a key-value blob store with per-object
// content-type metadata. Implementations must be safe for concurrent use;
// the store is the sole arbiter of consistency for a given key.
//
// All methods accept a context for cancellation and timeout control.
type ObjectStore interface {
	// Put stores content under key, overwriting any existing object.
	Put(ctx context.Context, key string, content io.Reader, opts PutOptions) (ObjectInfo, error)

	// Get retrieves an object's metadata and content. Returns ErrNotFound
	// if the key does not exist. The caller must close the returned reader.
	Get(ctx context.Context, key string) (ObjectInfo, io.ReadCloser, error)

	// List returns a page of objects. Ordering is whatever the backend
	// provides; callers must not assume upload order.
	List(ctx context.Context, q ListQuery) (ObjectPage, error)

	// Delete removes an object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Gallery implements the storage-gateway operations on top of an
// ObjectStore. It is stateless; any number of calls may run concurrently.
type Gallery struct {
	store ObjectStore
	now   func() time.Time
}

// GalleryOption configures a Gallery.
type GalleryOption func(*Gallery)

// WithClock overrides the clock used to derive upload keys. Intended for
// tests that need deterministic keys.
func WithClock(now func() time.Time) GalleryOption {
	return func(g *Gallery) {
		g.now = now
	}
}

// NewGallery creates a Gallery backed by the given store.
func NewGallery(store ObjectStore, opts ...GalleryOption) *Gallery {
	g := &Gallery{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Upload derives a key from the current time and the original filename,
// writes the content to the store, and returns the stored object's info.
// Exactly one object is created per successful call; a timestamp+filename
// collision silently overwrites, which is accepted as astronomically
// unlikely at millisecond granularity.
func (g *Gallery) Upload(ctx context.Context, in UploadInput, content io.Reader) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, fmt.Errorf("upload: %w", err)
	}

	key, err := NewObjectKey(g.now(), in.Filename)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("upload: %w", err)
	}

	info, err := g.store.Put(ctx, key.String(), content, PutOptions{
		ContentType: in.ContentType,
		Metadata:    in.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("upload %s: %w", key, err)
	}

	return info, nil
}

// Fetch returns a stored object's metadata and content. Objects written
// without a content type are reported as DefaultContentType.
func (g *Gallery) Fetch(ctx context.Context, key string) (ObjectInfo, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, nil, fmt.Errorf("fetch object: %w", err)
	}

	info, body, err := g.store.Get(ctx, key)
	if err != nil {
		return ObjectInfo{}, nil, fmt.Errorf("fetch object %s: %w", key, err)
	}

	if info.ContentType == "" {
		info.ContentType = DefaultContentType
	}

	return info, body, nil
}

// Images returns a page of stored objects. A zero-limit query returns the
// entire bucket in one page.
func (g *Gallery) Images(ctx context.Context, q ListQuery) (ObjectPage, error) {
	if err := ctx.Err(); err != nil {
		return ObjectPage{}, fmt.Errorf("list images: %w", err)
	}

	page, err := g.store.List(ctx, q)
	if err != nil {
		return ObjectPage{}, fmt.Errorf("list images: %w", err)
	}

	return page, nil
}

// Delete removes an object. Deletion is idempotent: removing a key that
// never existed succeeds.
func (g *Gallery) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	if err := g.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	return nil
}
