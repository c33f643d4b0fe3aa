package prune_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes/prunedoc"
	"github.com/mvaldes/prunedoc/mock"
	"github.com/mvaldes/prunedoc/prune"
)

func candidateSource(g prunedoc.Granularity, cands ...prunedoc.Candidate) *mock.CandidateSource {
	return &mock.CandidateSource{
		CandidatesFn:  func(_ context.Context) ([]prunedoc.Candidate, error) { return cands, nil },
		GranularityFn: func() prunedoc.Granularity { return g },
	}
}

func TestLocator_Locate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("paragraph granularity picks the earliest occurrence", func(t *testing.T) {
		t.Parallel()
		l := &prune.Locator{
			Source: candidateSource(prunedoc.GranularityParagraph,
				prunedoc.Candidate{Page: 4, Text: "MEDICIÓN DE RED"},
				prunedoc.Candidate{Page: 9, Text: "see medición de red above"},
			),
			TOC: prunedoc.TocRegion{},
		}

		page, err := l.Locate(ctx, "Medición de Red")

		require.NoError(t, err)
		assert.Equal(t, 4, page)
	})

	t.Run("page granularity picks the latest occurrence", func(t *testing.T) {
		t.Parallel()
		l := &prune.Locator{
			Source: candidateSource(prunedoc.GranularityPage,
				prunedoc.Candidate{Page: 4, Text: "caption mentions medicion de red"},
				prunedoc.Candidate{Page: 9, Text: "MEDICION DE RED"},
			),
			TOC: prunedoc.TocRegion{},
		}

		page, err := l.Locate(ctx, "MEDICIÓN DE RED")

		require.NoError(t, err)
		assert.Equal(t, 9, page)
	})

	t.Run("occurrences on TOC pages are excluded", func(t *testing.T) {
		t.Parallel()
		toc := prunedoc.TocRegion{}
		toc.Add(2)
		l := &prune.Locator{
			Source: candidateSource(prunedoc.GranularityParagraph,
				prunedoc.Candidate{Page: 2, Text: "3. MEDICIÓN DE RED ... 12"},
				prunedoc.Candidate{Page: 12, Text: "MEDICIÓN DE RED"},
			),
			TOC: toc,
		}

		page, err := l.Locate(ctx, "MEDICIÓN DE RED")

		require.NoError(t, err)
		assert.Equal(t, 12, page)
	})

	t.Run("title occurring only inside the TOC is not found", func(t *testing.T) {
		t.Parallel()
		toc := prunedoc.TocRegion{}
		toc.Add(1)
		l := &prune.Locator{
			Source: candidateSource(prunedoc.GranularityPage,
				prunedoc.Candidate{Page: 1, Text: "2. BETA ... 4"},
			),
			TOC: toc,
		}

		_, err := l.Locate(ctx, "BETA")

		assert.Equal(t, prunedoc.ENOTFOUND, prunedoc.ErrorCode(err))
	})

	t.Run("matching is accent and case insensitive", func(t *testing.T) {
		t.Parallel()
		l := &prune.Locator{
			Source: candidateSource(prunedoc.GranularityParagraph,
				prunedoc.Candidate{Page: 5, Text: "medición  termográfica"},
			),
			TOC: prunedoc.TocRegion{},
		}

		page, err := l.Locate(ctx, "MEDICION TERMOGRAFICA")

		require.NoError(t, err)
		assert.Equal(t, 5, page)
	})

	t.Run("empty title is not found", func(t *testing.T) {
		t.Parallel()
		l := &prune.Locator{
			Source: candidateSource(prunedoc.GranularityParagraph),
			TOC:    prunedoc.TocRegion{},
		}

		_, err := l.Locate(ctx, "   ")

		assert.Equal(t, prunedoc.ENOTFOUND, prunedoc.ErrorCode(err))
	})

	t.Run("no occurrence is not found", func(t *testing.T) {
		t.Parallel()
		l := &prune.Locator{
			Source: candidateSource(prunedoc.GranularityParagraph,
				prunedoc.Candidate{Page: 1, Text: "unrelated"},
			),
			TOC: prunedoc.TocRegion{},
		}

		_, err := l.Locate(ctx, "MISSING")

		assert.Equal(t, prunedoc.ENOTFOUND, prunedoc.ErrorCode(err))
	})

	t.Run("source errors propagate", func(t *testing.T) {
		t.Parallel()
		l := &prune.Locator{
			Source: &mock.CandidateSource{
				CandidatesFn: func(_ context.Context) ([]prunedoc.Candidate, error) {
					return nil, prunedoc.Errorf(prunedoc.EINTERNAL, "enumeration failed")
				},
				GranularityFn: func() prunedoc.Granularity { return prunedoc.GranularityParagraph },
			},
			TOC: prunedoc.TocRegion{},
		}

		_, err := l.Locate(ctx, "ANY")

		assert.Equal(t, prunedoc.EINTERNAL, prunedoc.ErrorCode(err))
	})
}

func TestFallback_Locate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("primary success skips the secondary", func(t *testing.T) {
		t.Parallel()
		f := &prune.Fallback{
			Primary: &prune.Locator{
				Source: candidateSource(prunedoc.GranularityParagraph,
					prunedoc.Candidate{Page: 3, Text: "ALPHA"},
				),
				TOC: prunedoc.TocRegion{},
			},
			Secondary: &prune.Locator{
				Source: &mock.CandidateSource{
					CandidatesFn: func(_ context.Context) ([]prunedoc.Candidate, error) {
						t.Fatal("secondary consulted")
						return nil, nil
					},
					GranularityFn: func() prunedoc.Granularity { return prunedoc.GranularityPage },
				},
				TOC: prunedoc.TocRegion{},
			},
		}

		page, err := f.Locate(ctx, "ALPHA")

		require.NoError(t, err)
		assert.Equal(t, 3, page)
	})

	t.Run("primary failure consults the secondary once", func(t *testing.T) {
		t.Parallel()
		f := &prune.Fallback{
			Primary: &prune.Locator{
				Source: candidateSource(prunedoc.GranularityParagraph),
				TOC:    prunedoc.TocRegion{},
			},
			Secondary: &prune.Locator{
				Source: candidateSource(prunedoc.GranularityPage,
					prunedoc.Candidate{Page: 7, Text: "page text with ALPHA"},
				),
				TOC: prunedoc.TocRegion{},
			},
		}

		page, err := f.Locate(ctx, "ALPHA")

		require.NoError(t, err)
		assert.Equal(t, 7, page)
	})
}
