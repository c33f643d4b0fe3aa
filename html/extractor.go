// Package html provides per-page text extraction from paginated HTML
// renders, where each page is a container element (by default ".page").
package html

import (
	"context"
	"os"

	"github.com/PuerkitoBio/goquery"

	"github.com/mvaldes/prunedoc"
)

// DefaultPageSelector matches the page containers produced by the report
// renderer's HTML export.
const DefaultPageSelector = ".page"

// Ensure Extractor implements prunedoc.Extractor at compile time.
var _ prunedoc.Extractor = (*Extractor)(nil)

// Extractor reads page text from a paginated HTML artifact. A document
// without page containers counts as a single page holding the whole body
// text.
type Extractor struct {
	// PageSelector overrides DefaultPageSelector.
	PageSelector string
}

func (e *Extractor) selector() string {
	if e.PageSelector != "" {
		return e.PageSelector
	}
	return DefaultPageSelector
}

func (e *Extractor) load(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, prunedoc.Errorf(prunedoc.ENOTFOUND, "open html %q: %v", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, prunedoc.Errorf(prunedoc.EINVALID, "parse html %q: %v", path, err)
	}
	return doc, nil
}

// PageCount implements prunedoc.Extractor.
func (e *Extractor) PageCount(ctx context.Context, path string) (int, error) {
	doc, err := e.load(path)
	if err != nil {
		return 0, err
	}
	n := doc.Find(e.selector()).Length()
	if n == 0 {
		n = 1
	}
	return n, nil
}

// PageText implements prunedoc.Extractor.
func (e *Extractor) PageText(ctx context.Context, path string, page int) (string, error) {
	doc, err := e.load(path)
	if err != nil {
		return "", err
	}
	pages := doc.Find(e.selector())
	if pages.Length() == 0 {
		if page != 1 {
			return "", prunedoc.Errorf(prunedoc.EINVALID, "page %d out of range 1..1", page)
		}
		return doc.Find("body").Text(), nil
	}
	if page < 1 || page > pages.Length() {
		return "", prunedoc.Errorf(prunedoc.EINVALID, "page %d out of range 1..%d", page, pages.Length())
	}
	return pages.Eq(page - 1).Text(), nil
}
