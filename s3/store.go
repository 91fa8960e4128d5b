// Package s3 provides an ObjectStore backed by any S3-compatible service
// (MinIO, AWS S3, Cloudflare R2). Switching providers is a matter of
// endpoint and credentials; no code changes are needed.
package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/picstash/picstash"
)

// Config holds the connection settings for an S3-compatible endpoint.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store implements picstash.ObjectStore over an S3-compatible bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// New creates a MinIO client and ensures the bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
		slog.Info("created bucket", "bucket", cfg.Bucket)
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Put streams content to the bucket under key. User metadata from opts is
// persisted as S3 user metadata.
func (s *Store) Put(ctx context.Context, key string, content io.Reader, opts picstash.PutOptions) (picstash.ObjectInfo, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, content, -1, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	})
	if err != nil {
		return picstash.ObjectInfo{}, fmt.Errorf("put object %q: %w", key, err)
	}

	return picstash.ObjectInfo{
		Key:         key,
		Size:        info.Size,
		ContentType: opts.ContentType,
		Metadata:    opts.Metadata,
	}, nil
}

// Get retrieves an object and its metadata. Returns picstash.ErrNotFound
// for absent keys.
func (s *Store) Get(ctx context.Context, key string) (picstash.ObjectInfo, io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return picstash.ObjectInfo{}, nil, fmt.Errorf("get object %q: %w", key, err)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return picstash.ObjectInfo{}, nil, picstash.ErrNotFound
		}
		return picstash.ObjectInfo{}, nil, fmt.Errorf("stat object %q: %w", key, err)
	}

	return picstash.ObjectInfo{
		Key:         key,
		Size:        stat.Size,
		ContentType: stat.ContentType,
		Metadata:    userMetadata(stat.UserMetadata),
	}, obj, nil
}

// List pages through the bucket in lexical key order using the previous
// page's last key as the continuation point.
func (s *Store) List(ctx context.Context, q picstash.ListQuery) (picstash.ObjectPage, error) {
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := s.client.ListObjects(listCtx, s.bucket, minio.ListObjectsOptions{
		WithMetadata: true,
		StartAfter:   q.Cursor,
	})

	var page picstash.ObjectPage
	for obj := range objects {
		if obj.Err != nil {
			return picstash.ObjectPage{}, fmt.Errorf("list objects: %w", obj.Err)
		}
		if q.Limit > 0 && len(page.Items) == q.Limit {
			page.NextCursor = page.Items[len(page.Items)-1].Key
			break
		}
		page.Items = append(page.Items, picstash.ObjectInfo{
			Key:         obj.Key,
			Size:        obj.Size,
			ContentType: listedContentType(obj),
			Metadata:    userMetadata(obj.UserMetadata),
		})
	}

	return page, nil
}

// Delete removes an object. S3 delete is idempotent: absent keys succeed.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

// listedContentType recovers a content type for a listing entry. Bucket
// listings do not reliably carry the stored content type, so fall back to
// extension-based detection on the key.
func listedContentType(obj minio.ObjectInfo) string {
	if obj.ContentType != "" {
		return obj.ContentType
	}
	if ct, ok := obj.UserMetadata["content-type"]; ok && ct != "" {
		return ct
	}
	return mime.TypeByExtension(filepath.Ext(obj.Key))
}

// userMetadata strips the x-amz-meta- prefix minio reports on fetched
// user metadata keys.
func userMetadata(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		k = strings.TrimPrefix(strings.ToLower(k), "x-amz-meta-")
		if k == "content-type" {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
