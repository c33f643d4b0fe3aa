package prune

import (
	"context"
	"sort"
	"strings"

	"github.com/mvaldes/prunedoc"
)

// Ensure sources implement prunedoc.CandidateSource.
var (
	_ prunedoc.CandidateSource = (*DocumentCandidates)(nil)
	_ prunedoc.CandidateSource = (*SnapshotCandidates)(nil)
)

// DocumentCandidates yields title-search candidates from a live document:
// every paragraph of the main text story plus every shape that carries text,
// each resolved to the page its range starts on.
type DocumentCandidates struct {
	Doc prunedoc.Document
}

// Granularity reports paragraph-level precision.
func (s *DocumentCandidates) Granularity() prunedoc.Granularity {
	return prunedoc.GranularityParagraph
}

// Candidates enumerates paragraphs and text-bearing shapes in page order.
// Entries whose page cannot be resolved are skipped rather than failing the
// whole enumeration.
func (s *DocumentCandidates) Candidates(ctx context.Context) ([]prunedoc.Candidate, error) {
	paras, err := s.Doc.Paragraphs()
	if err != nil {
		return nil, err
	}
	var out []prunedoc.Candidate
	for _, para := range paras {
		if strings.TrimSpace(para.Text) == "" {
			continue
		}
		page, err := s.Doc.PageNumberOfOffset(para.Range.Start)
		if err != nil {
			continue
		}
		out = append(out, prunedoc.Candidate{Page: page, Text: para.Text})
	}
	if shapes, err := s.Doc.Shapes(); err == nil {
		for _, sh := range shapes {
			if strings.TrimSpace(sh.Text) == "" {
				continue
			}
			page, err := s.Doc.PageNumberOfOffset(sh.Anchor)
			if err != nil {
				continue
			}
			out = append(out, prunedoc.Candidate{Page: page, Text: sh.Text})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Page < out[j].Page })
	return out, nil
}

// SnapshotCandidates yields one candidate per page of a rendered artifact,
// carrying the page's flattened text.
type SnapshotCandidates struct {
	Extractor prunedoc.Extractor
	Path      string
}

// Granularity reports whole-page precision.
func (s *SnapshotCandidates) Granularity() prunedoc.Granularity {
	return prunedoc.GranularityPage
}

// Candidates reads every page of the artifact. Pages whose text cannot be
// extracted contribute an empty candidate, which never matches a title.
func (s *SnapshotCandidates) Candidates(ctx context.Context) ([]prunedoc.Candidate, error) {
	total, err := s.Extractor.PageCount(ctx, s.Path)
	if err != nil {
		return nil, err
	}
	out := make([]prunedoc.Candidate, 0, total)
	for page := 1; page <= total; page++ {
		text, err := s.Extractor.PageText(ctx, s.Path, page)
		if err != nil {
			text = ""
		}
		out = append(out, prunedoc.Candidate{Page: page, Text: text})
	}
	return out, nil
}
