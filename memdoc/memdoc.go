// Package memdoc provides an in-memory implementation of prunedoc.Document.
// It models a paginated document as a sequence of pages with text, tables,
// shapes and inline objects, addressed through a single character space in
// which consecutive pages are separated by one page-break character.
//
// memdoc is the reference host: engine tests script documents with it, and
// its exported snapshots (plain text, form-feed separated) are readable by
// its companion Extractor, so full pipelines run without a real rendering
// backend.
package memdoc

import (
	"context"
	"os"
	"strings"

	"github.com/mvaldes/prunedoc"
)

// pageBreak separates consecutive pages in the document's character space
// and in exported snapshots.
const pageBreak = '\f'

type page struct {
	text   string
	styles []string // style per paragraph, parallel to the split lines
	tables []string
	shapes []string
	inline int
	toc    bool
}

// PageBuilder assembles one page for New.
type PageBuilder struct {
	p page
}

// NewPage starts a page with the given text. Paragraphs are separated by
// newlines within the text.
func NewPage(text string) *PageBuilder {
	return &PageBuilder{p: page{text: text}}
}

// Style sets the style name of the paragraph at the given index.
func (b *PageBuilder) Style(index int, name string) *PageBuilder {
	for len(b.p.styles) <= index {
		b.p.styles = append(b.p.styles, "")
	}
	b.p.styles[index] = name
	return b
}

// Table adds a table with the given flattened text to the page.
func (b *PageBuilder) Table(text string) *PageBuilder {
	b.p.tables = append(b.p.tables, text)
	return b
}

// Shape adds a free-floating shape with the given text, anchored at the
// page start.
func (b *PageBuilder) Shape(text string) *PageBuilder {
	b.p.shapes = append(b.p.shapes, text)
	return b
}

// Inline adds n inline objects to the page.
func (b *PageBuilder) Inline(n int) *PageBuilder {
	b.p.inline += n
	return b
}

// TOC marks the page as part of a native table-of-contents construct.
func (b *PageBuilder) TOC() *PageBuilder {
	b.p.toc = true
	return b
}

// Document is an in-memory prunedoc.Document.
type Document struct {
	pages []*page

	failDeletes bool
	closed      bool

	repaginations int
	saves         int
	tocUpdates    int
	exports       []string
}

var _ prunedoc.Document = (*Document)(nil)

// New builds a document from the given pages.
func New(pages ...*PageBuilder) *Document {
	d := &Document{}
	for _, b := range pages {
		p := b.p
		d.pages = append(d.pages, &p)
	}
	return d
}

// FailDeletes makes every subsequent DeleteRange call fail, simulating a
// host that rejects structural edits.
func (d *Document) FailDeletes(fail bool) { d.failDeletes = fail }

// Repaginations returns how many times Repaginate was called.
func (d *Document) Repaginations() int { return d.repaginations }

// Saves returns how many times Save was called.
func (d *Document) Saves() int { return d.saves }

// TOCUpdates returns how many times UpdateTOC was called.
func (d *Document) TOCUpdates() int { return d.tocUpdates }

// Exports returns the paths passed to Export, in order.
func (d *Document) Exports() []string { return d.exports }

// Closed reports whether Close was called.
func (d *Document) Closed() bool { return d.closed }

// PageTexts returns the current text of every page, for assertions.
func (d *Document) PageTexts() []string {
	out := make([]string, len(d.pages))
	for i, p := range d.pages {
		out[i] = p.text
	}
	return out
}

func (d *Document) guard() error {
	if d.closed {
		return prunedoc.Errorf(prunedoc.EINVALID, "document closed")
	}
	return nil
}

// offsets returns the start offset of each page. Page i occupies
// [offsets[i], offsets[i]+len_i), followed by one page-break character
// except after the last page.
func (d *Document) offsets() []int {
	out := make([]int, len(d.pages))
	cur := 0
	for i, p := range d.pages {
		out[i] = cur
		cur += len([]rune(p.text)) + 1
	}
	return out
}

// Close implements prunedoc.Document.
func (d *Document) Close() error {
	d.closed = true
	return nil
}

// Save implements prunedoc.Document.
func (d *Document) Save() error {
	if err := d.guard(); err != nil {
		return err
	}
	d.saves++
	return nil
}

// Repaginate implements prunedoc.Document. Page boundaries are derived
// live, so repagination only needs to be observable.
func (d *Document) Repaginate() error {
	if err := d.guard(); err != nil {
		return err
	}
	d.repaginations++
	return nil
}

// PageCount implements prunedoc.Document.
func (d *Document) PageCount() (int, error) {
	if err := d.guard(); err != nil {
		return 0, err
	}
	return len(d.pages), nil
}

// Length implements prunedoc.Document.
func (d *Document) Length() (int, error) {
	if err := d.guard(); err != nil {
		return 0, err
	}
	if len(d.pages) == 0 {
		return 0, nil
	}
	total := len(d.pages) - 1 // page breaks
	for _, p := range d.pages {
		total += len([]rune(p.text))
	}
	return total, nil
}

// OffsetOfPageStart implements prunedoc.Document.
func (d *Document) OffsetOfPageStart(pageNum int) (int, error) {
	if err := d.guard(); err != nil {
		return 0, err
	}
	if pageNum < 1 || pageNum > len(d.pages) {
		return 0, prunedoc.Errorf(prunedoc.EINVALID, "page %d out of range 1..%d", pageNum, len(d.pages))
	}
	return d.offsets()[pageNum-1], nil
}

// PageNumberOfOffset implements prunedoc.Document. The page-break character
// after a page belongs to that page.
func (d *Document) PageNumberOfOffset(offset int) (int, error) {
	if err := d.guard(); err != nil {
		return 0, err
	}
	length, _ := d.Length()
	if offset < 0 || offset >= length {
		return 0, prunedoc.Errorf(prunedoc.EINVALID, "offset %d out of range 0..%d", offset, length)
	}
	offs := d.offsets()
	for i := len(d.pages) - 1; i >= 0; i-- {
		if offset >= offs[i] {
			return i + 1, nil
		}
	}
	return 0, prunedoc.Errorf(prunedoc.EINTERNAL, "unreachable offset %d", offset)
}

func (d *Document) fullText() []rune {
	parts := make([]string, len(d.pages))
	for i, p := range d.pages {
		parts[i] = p.text
	}
	return []rune(strings.Join(parts, string(pageBreak)))
}

// Text implements prunedoc.Document.
func (d *Document) Text(start, end int) (string, error) {
	if err := d.guard(); err != nil {
		return "", err
	}
	text := d.fullText()
	if start < 0 || end > len(text) || start > end {
		return "", prunedoc.Errorf(prunedoc.EINVALID, "range [%d,%d) out of bounds", start, end)
	}
	return string(text[start:end]), nil
}

// DeleteRange implements prunedoc.Document. Pages whose entire text falls
// inside the range (including the following page break, or for the last
// page the document end) are removed with their tables, shapes and inline
// objects. Partial overlaps trim page text only; deleting a page break
// alone merges the adjacent pages.
func (d *Document) DeleteRange(start, end int) error {
	if err := d.guard(); err != nil {
		return err
	}
	if d.failDeletes {
		return prunedoc.Errorf(prunedoc.EDELETEFAILED, "host rejected deletion")
	}
	length, _ := d.Length()
	if start < 0 || end > length || start >= end {
		return prunedoc.Errorf(prunedoc.EINVALID, "range [%d,%d) out of bounds", start, end)
	}

	offs := d.offsets()
	var keep []*page
	pendingMerge := false
	for i, pg := range d.pages {
		pStart := offs[i]
		textLen := len([]rune(pg.text))
		textEnd := pStart + textLen
		last := i == len(d.pages)-1

		sepDeleted := false
		if !last && start <= textEnd && textEnd < end {
			sepDeleted = true
		}
		textCovered := start <= pStart && textEnd <= end
		if textCovered && (sepDeleted || last) {
			continue
		}

		if ovS, ovE := max(start, pStart), min(end, textEnd); ovE > ovS {
			r := []rune(pg.text)
			pg.text = string(r[:ovS-pStart]) + string(r[ovE-pStart:])
		}

		if pendingMerge && len(keep) > 0 {
			prev := keep[len(keep)-1]
			prev.text += pg.text
			prev.styles = append(prev.styles, pg.styles...)
			prev.tables = append(prev.tables, pg.tables...)
			prev.shapes = append(prev.shapes, pg.shapes...)
			prev.inline += pg.inline
			prev.toc = prev.toc || pg.toc
		} else {
			keep = append(keep, pg)
		}
		pendingMerge = sepDeleted
	}
	if len(keep) == 0 {
		keep = []*page{{}}
	}
	d.pages = keep
	return nil
}

// Paragraphs implements prunedoc.Document.
func (d *Document) Paragraphs() ([]prunedoc.Paragraph, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	var out []prunedoc.Paragraph
	offs := d.offsets()
	for i, pg := range d.pages {
		cur := offs[i]
		for j, line := range strings.Split(pg.text, "\n") {
			style := ""
			if j < len(pg.styles) {
				style = pg.styles[j]
			}
			n := len([]rune(line))
			out = append(out, prunedoc.Paragraph{
				Text:  line,
				Range: prunedoc.CharRange{Start: cur, End: cur + n},
				Style: style,
			})
			cur += n + 1
		}
	}
	return out, nil
}

// Shapes implements prunedoc.Document.
func (d *Document) Shapes() ([]prunedoc.Shape, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	var out []prunedoc.Shape
	offs := d.offsets()
	for i, pg := range d.pages {
		for _, text := range pg.shapes {
			out = append(out, prunedoc.Shape{Text: text, Anchor: offs[i]})
		}
	}
	return out, nil
}

// Tables implements prunedoc.Document.
func (d *Document) Tables() ([]prunedoc.Table, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	var out []prunedoc.Table
	offs := d.offsets()
	for i, pg := range d.pages {
		span := prunedoc.CharRange{Start: offs[i], End: offs[i] + len([]rune(pg.text))}
		for _, text := range pg.tables {
			out = append(out, prunedoc.Table{Text: text, Range: span})
		}
	}
	return out, nil
}

// InlineObjects implements prunedoc.Document.
func (d *Document) InlineObjects() ([]prunedoc.CharRange, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	var out []prunedoc.CharRange
	offs := d.offsets()
	for i, pg := range d.pages {
		for k := 0; k < pg.inline; k++ {
			out = append(out, prunedoc.CharRange{Start: offs[i], End: offs[i] + 1})
		}
	}
	return out, nil
}

// TableOfContents implements prunedoc.Document.
func (d *Document) TableOfContents() ([]prunedoc.CharRange, error) {
	if err := d.guard(); err != nil {
		return nil, err
	}
	var out []prunedoc.CharRange
	offs := d.offsets()
	for i, pg := range d.pages {
		if pg.toc {
			out = append(out, prunedoc.CharRange{Start: offs[i], End: offs[i] + len([]rune(pg.text))})
		}
	}
	return out, nil
}

// UpdateTOC implements prunedoc.Document.
func (d *Document) UpdateTOC() error {
	if err := d.guard(); err != nil {
		return err
	}
	d.tocUpdates++
	return nil
}

// Export implements prunedoc.Document. The snapshot is the document's plain
// text with pages separated by form feeds, readable by Extractor.
func (d *Document) Export(path string) error {
	if err := d.guard(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(string(d.fullText())), 0o644); err != nil {
		return prunedoc.Errorf(prunedoc.EINTERNAL, "export snapshot: %v", err)
	}
	d.exports = append(d.exports, path)
	return nil
}

// Host opens in-memory documents by path.
type Host struct {
	Docs map[string]*Document
}

var _ prunedoc.Host = (*Host)(nil)

// Open implements prunedoc.Host.
func (h *Host) Open(ctx context.Context, path string) (prunedoc.Document, error) {
	doc, ok := h.Docs[path]
	if !ok {
		return nil, prunedoc.Errorf(prunedoc.EUNAVAILABLE, "no document at %q", path)
	}
	return doc, nil
}

// Extractor reads snapshots written by Document.Export: plain text files
// with form-feed page separators.
type Extractor struct{}

var _ prunedoc.Extractor = (*Extractor)(nil)

func readPages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, prunedoc.Errorf(prunedoc.ENOTFOUND, "snapshot %q: %v", path, err)
	}
	return strings.Split(string(data), string(pageBreak)), nil
}

// PageCount implements prunedoc.Extractor.
func (e *Extractor) PageCount(ctx context.Context, path string) (int, error) {
	pages, err := readPages(path)
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// PageText implements prunedoc.Extractor.
func (e *Extractor) PageText(ctx context.Context, path string, pageNum int) (string, error) {
	pages, err := readPages(path)
	if err != nil {
		return "", err
	}
	if pageNum < 1 || pageNum > len(pages) {
		return "", prunedoc.Errorf(prunedoc.EINVALID, "page %d out of range 1..%d", pageNum, len(pages))
	}
	return pages[pageNum-1], nil
}
