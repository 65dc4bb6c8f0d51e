// Package objectstore implements artifact.Store on Google Cloud Storage.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/helixml/campsite/domain/artifact"
)

// GCS stores artifacts as objects in one bucket.
type GCS struct {
	bucket *storage.BucketHandle
	name   string
}

// NewClient opens a storage client using application default credentials
// unless opts say otherwise.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*storage.Client, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return client, nil
}

// NewGCS creates a GCS store for bucket.
func NewGCS(client *storage.Client, bucket string) *GCS {
	return &GCS{bucket: client.Bucket(bucket), name: bucket}
}

// Bucket returns the bucket name.
func (g *GCS) Bucket() string { return g.name }

// Upload streams the local file to the object, replacing any previous
// generation.
func (g *GCS) Upload(ctx context.Context, name, localPath string) (artifact.Object, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return artifact.Object{}, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer func() { _ = f.Close() }()

	w := g.bucket.Object(name).NewWriter(ctx)
	w.ContentType = "application/octet-stream"
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return artifact.Object{}, fmt.Errorf("upload gs://%s/%s: %w", g.name, name, err)
	}
	if err := w.Close(); err != nil {
		return artifact.Object{}, fmt.Errorf("upload gs://%s/%s: %w", g.name, name, err)
	}
	return toObject(w.Attrs()), nil
}

// Stat reads the object's metadata. A missing object or bucket yields
// artifact.ErrNotFound.
func (g *GCS) Stat(ctx context.Context, name string) (artifact.Object, error) {
	attrs, err := g.bucket.Object(name).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return artifact.Object{}, fmt.Errorf("gs://%s/%s: %w", g.name, name, artifact.ErrNotFound)
	}
	if err != nil {
		return artifact.Object{}, fmt.Errorf("stat gs://%s/%s: %w", g.name, name, err)
	}
	return toObject(attrs), nil
}

func toObject(attrs *storage.ObjectAttrs) artifact.Object {
	if attrs == nil {
		return artifact.Object{}
	}
	return artifact.Object{
		Name:       attrs.Name,
		Generation: attrs.Generation,
		Size:       attrs.Size,
		Updated:    attrs.Updated,
	}
}
