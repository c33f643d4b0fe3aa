package mock

import (
	"context"

	"github.com/mvaldes/prunedoc"
)

var _ prunedoc.SectionSource = (*SectionSource)(nil)

// SectionSource is a mock implementation of prunedoc.SectionSource.
type SectionSource struct {
	SectionsFn func(ctx context.Context, instance string) ([]prunedoc.SectionSpec, error)
}

func (s *SectionSource) Sections(ctx context.Context, instance string) ([]prunedoc.SectionSpec, error) {
	return s.SectionsFn(ctx, instance)
}

var _ prunedoc.ArtifactCompactor = (*ArtifactCompactor)(nil)

// ArtifactCompactor is a mock implementation of prunedoc.ArtifactCompactor.
type ArtifactCompactor struct {
	CompactFileFn func(ctx context.Context, path string) (int, error)
}

func (c *ArtifactCompactor) CompactFile(ctx context.Context, path string) (int, error) {
	return c.CompactFileFn(ctx, path)
}
