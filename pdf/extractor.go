// Package pdf provides per-page text extraction from rendered PDF
// snapshots using github.com/ledongthuc/pdf.
package pdf

import (
	"context"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/mvaldes/prunedoc"
)

// Ensure Extractor implements prunedoc.Extractor at compile time.
var _ prunedoc.Extractor = (*Extractor)(nil)

// Extractor reads page text from PDF files. Each call opens the file anew;
// snapshots are small and short-lived, so no handle is cached across the
// edits that invalidate them.
type Extractor struct{}

// PageCount implements prunedoc.Extractor.
func (e *Extractor) PageCount(ctx context.Context, path string) (int, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return 0, prunedoc.Errorf(prunedoc.ENOTFOUND, "open pdf %q: %v", path, err)
	}
	defer f.Close()
	return reader.NumPage(), nil
}

// PageText implements prunedoc.Extractor. Pages whose content cannot be
// decoded yield empty text rather than an error: a page the extractor
// cannot read never matches a title and is never classified blank from it.
func (e *Extractor) PageText(ctx context.Context, path string, page int) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", prunedoc.Errorf(prunedoc.ENOTFOUND, "open pdf %q: %v", path, err)
	}
	defer f.Close()

	if page < 1 || page > reader.NumPage() {
		return "", prunedoc.Errorf(prunedoc.EINVALID, "page %d out of range 1..%d", page, reader.NumPage())
	}
	p := reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", nil
	}
	return text, nil
}
