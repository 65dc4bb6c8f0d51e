package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/campsite/domain/artifact"
)

func TestNewVersion_RejectsMissingDependencies(t *testing.T) {
	_, err := NewVersion(nil, "campgrounds.index")
	assert.Error(t, err)
	_, err = NewVersion(newFakeArtifacts(), "")
	assert.Error(t, err)
}

func TestVersion_Current(t *testing.T) {
	art := newFakeArtifacts()
	art.objects["campgrounds.index"] = artifact.Object{Name: "campgrounds.index", Generation: 1718000000000001}

	svc, err := NewVersion(art, "campgrounds.index")
	require.NoError(t, err)

	gen, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1718000000000001), gen)

	// Reads are not cached.
	art.objects["campgrounds.index"] = artifact.Object{Name: "campgrounds.index", Generation: 1718000000000002}
	gen, err = svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1718000000000002), gen)
}

func TestVersion_CurrentNotFound(t *testing.T) {
	svc, err := NewVersion(newFakeArtifacts(), "campgrounds.index")
	require.NoError(t, err)

	_, err = svc.Current(context.Background())
	assert.ErrorIs(t, err, artifact.ErrNotFound)
}

func TestVersion_CurrentStorageError(t *testing.T) {
	art := newFakeArtifacts()
	art.statErr = errors.New("permission denied")
	svc, err := NewVersion(art, "campgrounds.index")
	require.NoError(t, err)

	_, err = svc.Current(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, artifact.ErrNotFound)
}
