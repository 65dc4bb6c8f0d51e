package service

import (
	"context"
	"fmt"

	"github.com/helixml/campsite/domain/artifact"
)

// Version reports the generation of the published index.
type Version struct {
	artifacts artifact.Store
	object    string
}

// NewVersion creates a Version for object.
func NewVersion(artifacts artifact.Store, object string) (*Version, error) {
	if artifacts == nil {
		return nil, fmt.Errorf("NewVersion: nil artifacts")
	}
	if object == "" {
		return nil, fmt.Errorf("NewVersion: empty object name")
	}
	return &Version{artifacts: artifacts, object: object}, nil
}

// Current returns the index generation. A missing index yields an error
// wrapping artifact.ErrNotFound. Nothing is cached between calls.
func (s *Version) Current(ctx context.Context) (int64, error) {
	obj, err := s.artifacts.Stat(ctx, s.object)
	if err != nil {
		return 0, err
	}
	return obj.Generation, nil
}
