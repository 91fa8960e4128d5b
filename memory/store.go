// Package memory implements an in-memory ObjectStore. It backs unit tests
// and local development where no durable storage is needed.
package memory

import (
	"bytes"
	"context"
	"io"
	"maps"
	"sort"
	"sync"

	"github.com/picstash/picstash"
)

type entry struct {
	info picstash.ObjectInfo
	data []byte
}

// Store implements picstash.ObjectStore backed by process memory.
type Store struct {
	mu   sync.RWMutex
	objs map[string]entry
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{objs: make(map[string]entry)}
}

// Put stores content under key, overwriting any existing object.
func (s *Store) Put(ctx context.Context, key string, content io.Reader, opts picstash.PutOptions) (picstash.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return picstash.ObjectInfo{}, err
	}

	b, err := io.ReadAll(content)
	if err != nil {
		return picstash.ObjectInfo{}, err
	}

	info := picstash.ObjectInfo{
		Key:         key,
		Size:        int64(len(b)),
		ContentType: opts.ContentType,
		Metadata:    maps.Clone(opts.Metadata),
	}

	s.mu.Lock()
	s.objs[key] = entry{info: info, data: b}
	s.mu.Unlock()

	return info, nil
}

// Get returns the object's metadata and content, or picstash.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (picstash.ObjectInfo, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return picstash.ObjectInfo{}, nil, err
	}

	s.mu.RLock()
	obj, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return picstash.ObjectInfo{}, nil, picstash.ErrNotFound
	}

	info := obj.info
	info.Metadata = maps.Clone(info.Metadata)
	return info, io.NopCloser(bytes.NewReader(obj.data)), nil
}

// List returns objects in ascending key order. The cursor is the last key
// of the previous page.
func (s *Store) List(ctx context.Context, q picstash.ListQuery) (picstash.ObjectPage, error) {
	if err := ctx.Err(); err != nil {
		return picstash.ObjectPage{}, err
	}

	s.mu.RLock()
	keys := make([]string, 0, len(s.objs))
	for k := range s.objs {
		if q.Cursor == "" || k > q.Cursor {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	page := picstash.ObjectPage{Items: make([]picstash.ObjectInfo, 0, len(keys))}
	for _, k := range keys {
		if q.Limit > 0 && len(page.Items) == q.Limit {
			page.NextCursor = page.Items[len(page.Items)-1].Key
			break
		}
		info := s.objs[k].info
		info.Metadata = maps.Clone(info.Metadata)
		page.Items = append(page.Items, info)
	}
	s.mu.RUnlock()

	return page, nil
}

// Delete removes an object. Absent keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.objs, key)
	s.mu.Unlock()
	return nil
}
