package prune

import (
	"context"
	"strings"

	"github.com/mvaldes/prunedoc"
)

// tocStyles is the fixed vocabulary matched (as substrings) against
// paragraph style names to spot TOC entries regardless of document language.
var tocStyles = []string{
	"toc",
	"indice",
	"index",
	"tabla de contenido",
	"table of contents",
}

// tocKeywords is the fixed keyword set matched against normalized page text.
// Values must already be in normalized form (see prunedoc.Normalize).
var tocKeywords = []string{
	"indice",
	"tabla de contenido",
	"tabla de contenidos",
	"table of contents",
	"index",
}

func containsAny(s string, vocab []string) bool {
	for _, k := range vocab {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// LocateTOC classifies the TOC pages of a live document. Three independent
// signals contribute, any one sufficient: native TOC constructs mapped to
// page ranges, paragraph styles from the TOC style vocabulary, and pages
// whose normalized text contains a TOC keyword. Host errors degrade to
// fewer signals; an empty region is a valid result and means every page is
// eligible for deletion.
func LocateTOC(doc prunedoc.Document) prunedoc.TocRegion {
	region := prunedoc.TocRegion{}

	if ranges, err := doc.TableOfContents(); err == nil {
		for _, r := range ranges {
			if pages, ok := PagesOfRange(doc, r.Start, r.End); ok {
				for p := pages.Start; p <= pages.End; p++ {
					region.Add(p)
				}
			}
		}
	}

	paras, err := doc.Paragraphs()
	if err != nil {
		return region
	}

	pageText := map[int]*strings.Builder{}
	for _, para := range paras {
		page, err := doc.PageNumberOfOffset(para.Range.Start)
		if err != nil {
			continue
		}
		if containsAny(prunedoc.Normalize(para.Style), tocStyles) {
			region.Add(page)
		}
		b, ok := pageText[page]
		if !ok {
			b = &strings.Builder{}
			pageText[page] = b
		}
		b.WriteString(para.Text)
		b.WriteString("\n")
	}
	for page, b := range pageText {
		if containsAny(prunedoc.Normalize(b.String()), tocKeywords) {
			region.Add(page)
		}
	}
	return region
}

// LocateTOCPages classifies the TOC pages of a rendered artifact. At this
// coarser granularity no paragraph or style information exists, so only the
// keyword signal applies, at whole-page level.
func LocateTOCPages(ctx context.Context, ex prunedoc.Extractor, path string) (prunedoc.TocRegion, error) {
	region := prunedoc.TocRegion{}
	total, err := ex.PageCount(ctx, path)
	if err != nil {
		return nil, err
	}
	for page := 1; page <= total; page++ {
		text, err := ex.PageText(ctx, path, page)
		if err != nil {
			continue
		}
		if containsAny(prunedoc.Normalize(text), tocKeywords) {
			region.Add(page)
		}
	}
	return region, nil
}
