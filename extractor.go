package prunedoc

import "context"

// Extractor reads per-page text from a rendered static artifact (a snapshot
// of the document exported by the host). It is the coarse counterpart of the
// live Document enumeration: no paragraph or style information, just the
// flattened text of each page.
type Extractor interface {
	// PageCount returns the number of pages in the artifact at path.
	PageCount(ctx context.Context, path string) (int, error)

	// PageText returns the text of the given 1-based page.
	PageText(ctx context.Context, path string, page int) (string, error)
}

// Granularity identifies how precise a candidate source is. The title
// locator's tie-break rule depends on it: paragraph-level sources pick the
// earliest occurrence (the heading itself, not a later body mention), while
// page-level sources pick the latest non-TOC page (more robust when the
// title also appears in captions or body text on earlier pages).
type Granularity int

const (
	// GranularityParagraph means candidates are individual paragraphs or
	// shapes from the live document.
	GranularityParagraph Granularity = iota

	// GranularityPage means candidates are whole pages of flattened text
	// from a rendered artifact.
	GranularityPage
)

// Candidate is one title-search candidate: the raw text of a paragraph,
// shape or page, and the 1-based page it sits on. Candidates are produced in
// document order.
type Candidate struct {
	Page int
	Text string
}

// CandidateSource produces title-search candidates from the current
// document state. Both the live structural enumeration and the flattened
// snapshot pass implement it, so the locator shares TOC-exclusion and
// tie-break logic across both.
type CandidateSource interface {
	Candidates(ctx context.Context) ([]Candidate, error)
	Granularity() Granularity
}
