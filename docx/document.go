package docx

import (
	"context"
	"os"
	"strings"

	"github.com/mvaldes/prunedoc"
)

const pageBreak = '\f'

// Document is a read-only view of a .docx file. Offsets are rune offsets
// into the document's plain text, with pages joined by a form feed that
// belongs to the page before it.
type Document struct {
	pages []*pageData
}

var _ prunedoc.Document = (*Document)(nil)

func (d *Document) offsets() []int {
	out := make([]int, len(d.pages))
	cur := 0
	for i, p := range d.pages {
		out[i] = cur
		cur += len([]rune(p.text())) + 1
	}
	return out
}

func (d *Document) fullText() []rune {
	parts := make([]string, len(d.pages))
	for i, p := range d.pages {
		parts[i] = p.text()
	}
	return []rune(strings.Join(parts, string(pageBreak)))
}

// Close implements prunedoc.Document. The file is fully parsed at open
// time, so there is nothing to release.
func (d *Document) Close() error { return nil }

// Save implements prunedoc.Document.
func (d *Document) Save() error {
	return prunedoc.Errorf(prunedoc.EUNSUPPORTED, "docx documents are read-only")
}

// Repaginate implements prunedoc.Document. Pagination is fixed by the
// page-break markers recorded in the file.
func (d *Document) Repaginate() error { return nil }

// PageCount implements prunedoc.Document.
func (d *Document) PageCount() (int, error) { return len(d.pages), nil }

// Length implements prunedoc.Document.
func (d *Document) Length() (int, error) {
	if len(d.pages) == 0 {
		return 0, nil
	}
	total := len(d.pages) - 1 // page breaks
	for _, p := range d.pages {
		total += len([]rune(p.text()))
	}
	return total, nil
}

// OffsetOfPageStart implements prunedoc.Document.
func (d *Document) OffsetOfPageStart(pageNum int) (int, error) {
	if pageNum < 1 || pageNum > len(d.pages) {
		return 0, prunedoc.Errorf(prunedoc.EINVALID, "page %d out of range 1..%d", pageNum, len(d.pages))
	}
	return d.offsets()[pageNum-1], nil
}

// PageNumberOfOffset implements prunedoc.Document. The page-break character
// after a page belongs to that page.
func (d *Document) PageNumberOfOffset(offset int) (int, error) {
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

// Text implements prunedoc.Document.
func (d *Document) Text(start, end int) (string, error) {
	text := d.fullText()
	if start < 0 || end > len(text) || start > end {
		return "", prunedoc.Errorf(prunedoc.EINVALID, "range [%d,%d) out of bounds", start, end)
	}
	return string(text[start:end]), nil
}

// DeleteRange implements prunedoc.Document.
func (d *Document) DeleteRange(start, end int) error {
	return prunedoc.Errorf(prunedoc.EUNSUPPORTED, "docx documents are read-only")
}

// Paragraphs implements prunedoc.Document.
func (d *Document) Paragraphs() ([]prunedoc.Paragraph, error) {
	var out []prunedoc.Paragraph
	offs := d.offsets()
	for i, pg := range d.pages {
		cur := offs[i]
		for _, l := range pg.lines {
			n := len([]rune(l.text))
			out = append(out, prunedoc.Paragraph{
				Text:  l.text,
				Range: prunedoc.CharRange{Start: cur, End: cur + n},
				Style: l.style,
			})
			cur += n + 1
		}
	}
	return out, nil
}

// Shapes implements prunedoc.Document. Text boxes are anchored at the start
// of the page holding their paragraph.
func (d *Document) Shapes() ([]prunedoc.Shape, error) {
	var out []prunedoc.Shape
	offs := d.offsets()
	for i, pg := range d.pages {
		for _, text := range pg.shapes {
			out = append(out, prunedoc.Shape{Text: text, Anchor: offs[i]})
		}
	}
	return out, nil
}

// Tables implements prunedoc.Document. A table spans the text of the page
// it starts on.
func (d *Document) Tables() ([]prunedoc.Table, error) {
	var out []prunedoc.Table
	offs := d.offsets()
	for i, pg := range d.pages {
		span := prunedoc.CharRange{Start: offs[i], End: offs[i] + len([]rune(pg.text()))}
		for _, text := range pg.tables {
			out = append(out, prunedoc.Table{Text: text, Range: span})
		}
	}
	return out, nil
}

// InlineObjects implements prunedoc.Document.
func (d *Document) InlineObjects() ([]prunedoc.CharRange, error) {
	var out []prunedoc.CharRange
	offs := d.offsets()
	for i, pg := range d.pages {
		for k := 0; k < pg.inline; k++ {
			out = append(out, prunedoc.CharRange{Start: offs[i], End: offs[i] + 1})
		}
	}
	return out, nil
}

// TableOfContents implements prunedoc.Document. Each paragraph produced by
// a TOC field or carrying a TOC style contributes its own range.
func (d *Document) TableOfContents() ([]prunedoc.CharRange, error) {
	var out []prunedoc.CharRange
	offs := d.offsets()
	for i, pg := range d.pages {
		cur := offs[i]
		for _, l := range pg.lines {
			n := len([]rune(l.text))
			if l.toc {
				out = append(out, prunedoc.CharRange{Start: cur, End: cur + n})
			}
			cur += n + 1
		}
	}
	return out, nil
}

// UpdateTOC implements prunedoc.Document.
func (d *Document) UpdateTOC() error {
	return prunedoc.Errorf(prunedoc.EUNSUPPORTED, "docx documents are read-only")
}

// Export implements prunedoc.Document. The snapshot is the document's plain
// text with pages separated by form feeds.
func (d *Document) Export(path string) error {
	if err := os.WriteFile(path, []byte(string(d.fullText())), 0o644); err != nil {
		return prunedoc.Errorf(prunedoc.EINTERNAL, "export snapshot: %v", err)
	}
	return nil
}

// Host opens .docx files from the filesystem.
type Host struct{}

var _ prunedoc.Host = (*Host)(nil)

// Open implements prunedoc.Host.
func (h *Host) Open(ctx context.Context, path string) (prunedoc.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, prunedoc.Errorf(prunedoc.ENOTFOUND, "document %q not found", path)
		}
		return nil, prunedoc.Errorf(prunedoc.EUNAVAILABLE, "open document %q: %v", path, err)
	}
	return Parse(data)
}
