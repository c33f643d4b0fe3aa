// Package pdfcpu removes near-blank pages from exported PDF artifacts
// using github.com/pdfcpu/pdfcpu. It is the coarse, artifact-level
// counterpart of the live blank-page compactor: once the document has been
// exported, pages that render with effectively no text can still be dropped
// from the PDF itself.
package pdfcpu

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/mvaldes/prunedoc"
)

// Near-blank thresholds: a page survives when its stripped text exceeds
// either limit. Carried over from the report generator this engine was
// extracted from.
const (
	DefaultMinChars = 20
	DefaultMinWords = 3
)

// Ensure Compactor implements prunedoc.ArtifactCompactor at compile time.
var _ prunedoc.ArtifactCompactor = (*Compactor)(nil)

// Compactor removes near-blank pages from a PDF file in place. Text is read
// through the injected Extractor; pdfcpu performs the page removal.
type Compactor struct {
	Extractor prunedoc.Extractor
	Logger    *slog.Logger

	// MinChars and MinWords override the default thresholds when > 0.
	MinChars int
	MinWords int
}

// RemovablePages returns the 1-based indexes of pages whose text is at or
// below both thresholds. texts holds one entry per page in order.
func RemovablePages(texts []string, minChars, minWords int) []int {
	var out []int
	for i, text := range texts {
		stripped := strings.TrimSpace(text)
		if len(stripped) > minChars || len(strings.Fields(stripped)) > minWords {
			continue
		}
		out = append(out, i+1)
	}
	return out
}

// CompactFile implements prunedoc.ArtifactCompactor. It never removes every
// page: when all pages are classified removable the first one is kept, so
// the artifact is never reduced to zero pages. Returns the number of pages
// removed.
func (c *Compactor) CompactFile(ctx context.Context, path string) (int, error) {
	total, err := api.PageCountFile(path)
	if err != nil {
		return 0, prunedoc.Errorf(prunedoc.ENOTFOUND, "page count of %q: %v", path, err)
	}
	if total <= 1 {
		return 0, nil
	}

	texts := make([]string, total)
	for page := 1; page <= total; page++ {
		text, err := c.Extractor.PageText(ctx, path, page)
		if err != nil {
			// Unreadable pages are kept: never delete on uncertainty.
			text = strings.Repeat("?", c.minChars()+1)
		}
		texts[page-1] = text
	}

	remove := RemovablePages(texts, c.minChars(), c.minWords())
	if len(remove) == total {
		remove = remove[1:]
	}
	if len(remove) == 0 {
		return 0, nil
	}

	selected := make([]string, len(remove))
	for i, page := range remove {
		selected[i] = strconv.Itoa(page)
	}
	if err := api.RemovePagesFile(path, "", selected, nil); err != nil {
		return 0, prunedoc.Errorf(prunedoc.EDELETEFAILED, "remove pages from %q: %v", path, err)
	}
	if c.Logger != nil {
		c.Logger.Info("artifact pages removed", "path", path, "pages", remove)
	}
	return len(remove), nil
}

func (c *Compactor) minChars() int {
	if c.MinChars > 0 {
		return c.MinChars
	}
	return DefaultMinChars
}

func (c *Compactor) minWords() int {
	if c.MinWords > 0 {
		return c.MinWords
	}
	return DefaultMinWords
}
