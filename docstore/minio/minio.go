// Package minio provides a docstore.Backend for MinIO and S3-compatible
// object storage.
package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/zoobzio/lattice/docstore"
)

// Backend implements docstore.Backend over a MinIO bucket.
type Backend struct {
	client *minio.Client
	bucket string
	prefix string
}

// New creates a MinIO backend. bucket is the bucket name and rootPrefix is
// prepended to every key (e.g. "documents/"). The client's endpoint and
// credentials are the caller's concern.
func New(client *minio.Client, bucket, rootPrefix string) *Backend {
	return &Backend{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (b *Backend) key(key string) string {
	return path.Join(b.prefix, key)
}

// Put writes the document bytes.
func (b *Backend) Put(ctx context.Context, key string, data []byte) error {
	_, err := b.client.PutObject(ctx, b.bucket, b.key(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

// Get reads the document bytes.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.key(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, docstore.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Delete removes the document. Deleting a missing key is not an error.
func (b *Backend) Delete(ctx context.Context, key string) error {
	err := b.client.RemoveObject(ctx, b.bucket, b.key(key), minio.RemoveObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil // Already gone
		}
		return err
	}
	return nil
}

// List returns all keys with the given prefix.
func (b *Backend) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := b.key(prefix)

	var keys []string
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{
		Prefix:    fullPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		// Strip our root prefix
		key := strings.TrimPrefix(obj.Key, b.prefix)
		key = strings.TrimPrefix(key, "/")
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys, nil
}
