package mock

import (
	"context"

	"github.com/mvaldes/prunedoc"
)

var _ prunedoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of prunedoc.Extractor.
type Extractor struct {
	PageCountFn func(ctx context.Context, path string) (int, error)
	PageTextFn  func(ctx context.Context, path string, page int) (string, error)
}

func (e *Extractor) PageCount(ctx context.Context, path string) (int, error) {
	return e.PageCountFn(ctx, path)
}

func (e *Extractor) PageText(ctx context.Context, path string, page int) (string, error) {
	return e.PageTextFn(ctx, path, page)
}

var _ prunedoc.CandidateSource = (*CandidateSource)(nil)

// CandidateSource is a mock implementation of prunedoc.CandidateSource.
type CandidateSource struct {
	CandidatesFn  func(ctx context.Context) ([]prunedoc.Candidate, error)
	GranularityFn func() prunedoc.Granularity
}

func (s *CandidateSource) Candidates(ctx context.Context) ([]prunedoc.Candidate, error) {
	return s.CandidatesFn(ctx)
}

func (s *CandidateSource) Granularity() prunedoc.Granularity {
	return s.GranularityFn()
}
