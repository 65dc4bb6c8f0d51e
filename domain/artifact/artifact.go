// Package artifact describes published build outputs such as the search index.
package artifact

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// Object is the metadata of a stored artifact.
// Generation increases every time the object is overwritten.
type Object struct {
	Name       string
	Generation int64
	Size       int64
	Updated    time.Time
}

// Store publishes artifacts and reports their metadata.
type Store interface {
	// Upload copies the local file to name, replacing any existing object.
	Upload(ctx context.Context, name, localPath string) (Object, error)

	// Stat returns metadata for name, or ErrNotFound.
	Stat(ctx context.Context, name string) (Object, error)
}
