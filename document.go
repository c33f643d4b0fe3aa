package prunedoc

import "context"

// CharRange is a half-open [Start,End) range of character offsets within a
// document's main text story.
type CharRange struct {
	Start int
	End   int
}

// Len returns the number of characters covered by the range.
func (r CharRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// PageRange is an inclusive range of 1-based page numbers.
type PageRange struct {
	Start int
	End   int
}

// Pages returns the number of pages covered by the range.
func (r PageRange) Pages() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// Paragraph is one paragraph of the document's main text story, with the
// host-reported style name (empty when the host has no style information).
type Paragraph struct {
	Text  string
	Range CharRange
	Style string
}

// Shape is a free-floating drawing object anchored at a character offset.
// Text is empty for shapes without a text frame.
type Shape struct {
	Text   string
	Anchor int
}

// Table is a table contained in the document, with its flattened cell text.
type Table struct {
	Text  string
	Range CharRange
}

// TocRegion is the set of page numbers currently classified as table of
// contents. It is recomputed from the current document state whenever needed
// and never persisted across edits.
type TocRegion map[int]struct{}

// Contains reports whether page is part of the TOC region.
func (t TocRegion) Contains(page int) bool {
	_, ok := t[page]
	return ok
}

// Add marks page as TOC-resident.
func (t TocRegion) Add(page int) {
	t[page] = struct{}{}
}

// Max returns the highest TOC page number, or 0 for an empty region.
func (t TocRegion) Max() int {
	max := 0
	for p := range t {
		if p > max {
			max = p
		}
	}
	return max
}

// Document is an open, editable, paginated document. A Document is owned
// exclusively by the pipeline invocation that opened it; implementations are
// not required to be safe for concurrent use.
//
// Page numbers are 1-based and contiguous 1..PageCount immediately after
// Repaginate. Every structural edit invalidates previously computed page
// boundaries until the next Repaginate. Read-only hosts report EUNSUPPORTED
// from the mutating methods instead of probing for optional capabilities.
type Document interface {
	// Close releases the document and its host resources. Close must be
	// called on every exit path, including failures.
	Close() error

	// Save persists pending edits.
	Save() error

	// Repaginate recomputes page boundaries after an edit. It must be
	// called before any page-number-dependent query that follows an edit.
	Repaginate() error

	// PageCount returns the current number of pages.
	PageCount() (int, error)

	// Length returns the total number of characters in the main text story.
	Length() (int, error)

	// OffsetOfPageStart returns the character offset of the first character
	// on the given 1-based page.
	OffsetOfPageStart(page int) (int, error)

	// PageNumberOfOffset returns the 1-based page number containing the
	// given character offset.
	PageNumberOfOffset(offset int) (int, error)

	// Text returns the visible text of the half-open range [start,end).
	Text(start, end int) (string, error)

	// DeleteRange removes the half-open character range [start,end).
	// Host rejections are reported as EDELETEFAILED and are recoverable:
	// the caller skips the range and continues.
	DeleteRange(start, end int) error

	// Paragraphs enumerates the paragraphs of the main text story in
	// document order.
	Paragraphs() ([]Paragraph, error)

	// Shapes enumerates free-floating shapes anchored in the document.
	Shapes() ([]Shape, error)

	// Tables enumerates tables contained in the document.
	Tables() ([]Table, error)

	// InlineObjects enumerates inline images and embedded objects.
	InlineObjects() ([]CharRange, error)

	// TableOfContents returns the character ranges of native TOC
	// constructs, if the host exposes them. An empty result is valid.
	TableOfContents() ([]CharRange, error)

	// UpdateTOC refreshes TOC page-number references after edits.
	UpdateTOC() error

	// Export renders the document to a static artifact (e.g. PDF) at path.
	Export(path string) error
}

// Host opens documents for editing. It is the explicit replacement for an
// ambient "current application instance" handle: callers inject a Host and
// the pipeline acquires one Document per run, releasing it on every exit
// path. An acquisition failure is EUNAVAILABLE and is fatal only for that
// document's pipeline.
type Host interface {
	Open(ctx context.Context, path string) (Document, error)
}

// ArtifactCompactor removes blank pages from an already-exported static
// artifact, for hosts whose live compaction pass cannot see the rendered
// output.
type ArtifactCompactor interface {
	CompactFile(ctx context.Context, path string) (int, error)
}
