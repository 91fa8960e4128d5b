// Package filesystem provides a local-disk ObjectStore. Object bytes live
// in a sandboxed root directory; a JSON sidecar per object records the
// content type and user metadata supplied at write time. Writes are atomic
// via a temp file and rename.
package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/picstash/picstash"
)

const metaSuffix = ".meta"

// Store implements picstash.ObjectStore on a local directory.
type Store struct {
	root *os.Root
}

// New creates a Store over the given root. The root provides sandboxed
// file operations preventing path traversal.
func New(root *os.Root) *Store {
	return &Store{root: root}
}

// sidecar is the on-disk metadata record kept next to each object.
type sidecar struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Put atomically writes content to key using a temp file and rename, then
// records the sidecar. An existing object under the same key is overwritten.
func (s *Store) Put(ctx context.Context, key string, content io.Reader, opts picstash.PutOptions) (picstash.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return picstash.ObjectInfo{}, err
	}

	if err := validKey(key); err != nil {
		return picstash.ObjectInfo{}, err
	}

	tmp := tmpFileName()
	t, err := s.root.Create(tmp)
	if err != nil {
		return picstash.ObjectInfo{}, fmt.Errorf("could not open temp file: %w", err)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmp); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	size, err := io.Copy(t, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return picstash.ObjectInfo{}, fmt.Errorf("could not copy object contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return picstash.ObjectInfo{}, fmt.Errorf("could not sync written file: %w", err)
	}
	if err := t.Close(); err != nil {
		return picstash.ObjectInfo{}, fmt.Errorf("could not close written file: %w", err)
	}

	if err := s.writeSidecar(key, sidecar{ContentType: opts.ContentType, Metadata: opts.Metadata}); err != nil {
		return picstash.ObjectInfo{}, err
	}

	if err := s.root.Rename(tmp, key); err != nil {
		return picstash.ObjectInfo{}, fmt.Errorf("failed to rename file: %w", err)
	}
	success = true

	return picstash.ObjectInfo{
		Key:         key,
		Size:        size,
		ContentType: opts.ContentType,
		Metadata:    maps.Clone(opts.Metadata),
	}, nil
}

// Get opens an object for reading. Returns picstash.ErrNotFound if the key
// does not exist. Objects without a sidecar report an empty content type.
func (s *Store) Get(ctx context.Context, key string) (picstash.ObjectInfo, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return picstash.ObjectInfo{}, nil, err
	}

	if err := validKey(key); err != nil {
		return picstash.ObjectInfo{}, nil, picstash.ErrNotFound
	}

	f, err := s.root.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return picstash.ObjectInfo{}, nil, picstash.ErrNotFound
		}
		return picstash.ObjectInfo{}, nil, fmt.Errorf("failed to open object: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return picstash.ObjectInfo{}, nil, fmt.Errorf("failed to stat object: %w", err)
	}

	meta := s.readSidecar(key)

	info := picstash.ObjectInfo{
		Key:         key,
		Size:        stat.Size(),
		ContentType: meta.ContentType,
		Metadata:    meta.Metadata,
	}

	return info, f, nil
}

// List returns objects in ascending key order, skipping sidecars and
// in-flight temp files. The cursor is the last key of the previous page.
func (s *Store) List(ctx context.Context, q picstash.ListQuery) (picstash.ObjectPage, error) {
	if err := ctx.Err(); err != nil {
		return picstash.ObjectPage{}, err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), ".")
	if err != nil {
		return picstash.ObjectPage{}, fmt.Errorf("failed to list objects: %w", err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || strings.HasSuffix(name, metaSuffix) {
			continue
		}
		if q.Cursor != "" && name <= q.Cursor {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	page := picstash.ObjectPage{Items: make([]picstash.ObjectInfo, 0, len(names))}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return picstash.ObjectPage{}, err
		}
		if q.Limit > 0 && len(page.Items) == q.Limit {
			page.NextCursor = page.Items[len(page.Items)-1].Key
			break
		}

		stat, err := fs.Stat(s.root.FS(), name)
		if err != nil {
			return picstash.ObjectPage{}, fmt.Errorf("failed to stat %s: %w", name, err)
		}

		meta := s.readSidecar(name)
		page.Items = append(page.Items, picstash.ObjectInfo{
			Key:         name,
			Size:        stat.Size(),
			ContentType: meta.ContentType,
			Metadata:    meta.Metadata,
		})
	}

	return page, nil
}

// Delete removes an object and its sidecar. Absent keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validKey(key); err != nil {
		return nil
	}

	if err := s.root.Remove(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not delete object: %w", err)
	}
	if err := s.root.Remove(key + metaSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to remove sidecar", "key", key, "err", err)
	}
	return nil
}

func (s *Store) writeSidecar(key string, meta sidecar) error {
	f, err := s.root.Create(key + metaSuffix)
	if err != nil {
		return fmt.Errorf("could not create sidecar: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(meta); err != nil {
		return fmt.Errorf("could not write sidecar: %w", err)
	}
	return nil
}

func (s *Store) readSidecar(key string) sidecar {
	var meta sidecar
	f, err := s.root.Open(key + metaSuffix)
	if err != nil {
		return meta
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(&meta); err != nil {
		slog.Warn("failed to decode sidecar", "key", key, "err", err)
	}
	return meta
}

// validKey rejects keys that would escape the root or collide with the
// store's own bookkeeping files.
func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: invalid object key %q", picstash.ErrInvalidInput, key)
	}
	if strings.HasSuffix(key, metaSuffix) {
		return fmt.Errorf("%w: object key %q collides with metadata sidecar", picstash.ErrInvalidInput, key)
	}
	return nil
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
