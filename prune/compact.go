package prune

import (
	"log/slog"

	"github.com/mvaldes/prunedoc"
)

// Compactor removes blank pages from a live document. Traversal is strictly
// descending: deleting a lower page first would invalidate the indices of
// all higher, not-yet-visited pages.
type Compactor struct {
	Classifier *Classifier
	Logger     *slog.Logger
}

// Compact repaginates, sweeps the document from the last page down to the
// first, deletes every blank page, and repaginates again (with a TOC
// page-number refresh) when anything was removed. It returns the number of
// pages removed. A document with one page is never compacted: a report must
// never be reduced to zero pages.
//
// Compact is idempotent: a second run on an already-compacted document
// removes zero pages.
func (c *Compactor) Compact(doc prunedoc.Document) (int, error) {
	if err := doc.Repaginate(); err != nil {
		return 0, err
	}
	total, err := doc.PageCount()
	if err != nil {
		return 0, err
	}
	if total <= 1 {
		return 0, nil
	}

	removed := 0
	remaining := total
	for page := total; page >= 1 && remaining > 1; page-- {
		if !c.Classifier.IsPageBlank(doc, page) {
			continue
		}
		if err := DeletePageRange(doc, page, page); err != nil {
			c.warn("blank page not removed", page, err)
			continue
		}
		removed++
		remaining--
	}

	if removed > 0 {
		if err := doc.Repaginate(); err != nil {
			return removed, err
		}
		if err := doc.UpdateTOC(); err != nil {
			c.warn("toc refresh failed", 0, err)
		}
	}
	return removed, nil
}

func (c *Compactor) warn(msg string, page int, err error) {
	if c.Logger == nil {
		return
	}
	if page > 0 {
		c.Logger.Warn(msg, "page", page, "error", err)
		return
	}
	c.Logger.Warn(msg, "error", err)
}
