package prune

import (
	"context"
	"strings"

	"github.com/mvaldes/prunedoc"
)

// TitleLocator resolves a section title to the 1-based page it sits on.
// Returns ENOTFOUND when no usable occurrence exists.
type TitleLocator interface {
	Locate(ctx context.Context, title string) (int, error)
}

// Locator finds the page a section title occurs on, excluding occurrences
// inside the TOC. One implementation serves both search granularities; the
// candidate source decides which tie-break applies.
type Locator struct {
	Source prunedoc.CandidateSource
	TOC    prunedoc.TocRegion
}

var _ TitleLocator = (*Locator)(nil)

// Locate returns the page of the title occurrence that best identifies the
// section heading:
//
//   - paragraph granularity: the earliest non-TOC occurrence (the heading
//     itself, not a later body mention);
//   - page granularity: the latest non-TOC page (robust when the title also
//     appears in captions or body text on earlier pages);
//   - only TOC-resident occurrences: the first candidate page strictly past
//     the TOC, else ENOTFOUND (a TOC page is never a deletion target).
//
// An empty title or no occurrence at all is ENOTFOUND.
func (l *Locator) Locate(ctx context.Context, title string) (int, error) {
	target := prunedoc.Normalize(title)
	if target == "" {
		return 0, prunedoc.Errorf(prunedoc.ENOTFOUND, "empty section title")
	}

	cands, err := l.Source.Candidates(ctx)
	if err != nil {
		return 0, err
	}

	var matched []prunedoc.Candidate
	for _, c := range cands {
		if strings.Contains(prunedoc.Normalize(c.Text), target) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return 0, prunedoc.Errorf(prunedoc.ENOTFOUND, "title %q not found", title)
	}

	var nonTOC []prunedoc.Candidate
	for _, c := range matched {
		if !l.TOC.Contains(c.Page) {
			nonTOC = append(nonTOC, c)
		}
	}

	if len(nonTOC) > 0 {
		if l.Source.Granularity() == prunedoc.GranularityParagraph {
			return nonTOC[0].Page, nil
		}
		best := nonTOC[0].Page
		for _, c := range nonTOC[1:] {
			if c.Page > best {
				best = c.Page
			}
		}
		return best, nil
	}

	// Every occurrence sits inside the TOC. The section itself must render
	// past the TOC, so the only acceptable fallback is a candidate beyond
	// it; a TOC page is never a deletion target.
	if max := l.TOC.Max(); max > 0 {
		for _, c := range matched {
			if c.Page > max {
				return c.Page, nil
			}
		}
	}
	return 0, prunedoc.Errorf(prunedoc.ENOTFOUND, "title %q only occurs inside the table of contents", title)
}

// Fallback chains two locators: if the primary fails for any reason, the
// secondary is consulted once. It implements the single bounded degradation
// from paragraph-level to page-level search.
type Fallback struct {
	Primary   TitleLocator
	Secondary TitleLocator
}

var _ TitleLocator = (*Fallback)(nil)

// Locate tries the primary locator, then the secondary.
func (f *Fallback) Locate(ctx context.Context, title string) (int, error) {
	page, err := f.Primary.Locate(ctx, title)
	if err == nil {
		return page, nil
	}
	return f.Secondary.Locate(ctx, title)
}
