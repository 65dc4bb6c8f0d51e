package objectstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/campsite/domain/artifact"
	"github.com/helixml/campsite/internal/testdb"
)

func TestToObject(t *testing.T) {
	assert.Equal(t, artifact.Object{}, toObject(nil))
}

func TestGCS_UploadMissingFile(t *testing.T) {
	g := &GCS{name: "bucket"}
	_, err := g.Upload(context.Background(), "campgrounds.index", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}

func TestGCS_UploadAndStat(t *testing.T) {
	client, bucket := testdb.Bucket(t)
	ctx := context.Background()
	store := NewGCS(client, bucket)
	name := "campgrounds.index"

	_, err := store.Stat(ctx, name)
	require.ErrorIs(t, err, artifact.ErrNotFound)

	path := filepath.Join(t.TempDir(), "campgrounds.index")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	first, err := store.Upload(ctx, name, path)
	require.NoError(t, err)
	assert.Equal(t, name, first.Name)
	assert.Equal(t, int64(5), first.Size)
	assert.NotZero(t, first.Generation)

	stat, err := store.Stat(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, first.Generation, stat.Generation)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	second, err := store.Upload(ctx, name, path)
	require.NoError(t, err)
	assert.Greater(t, second.Generation, first.Generation)
}

func TestGCS_StatMissingBucket(t *testing.T) {
	client, _ := testdb.Bucket(t)
	store := NewGCS(client, "no-such-bucket")

	_, err := store.Stat(context.Background(), "campgrounds.index")
	assert.ErrorIs(t, err, artifact.ErrNotFound)
}
