package prune

import (
	"log/slog"
	"unicode"

	"github.com/mvaldes/prunedoc"
)

// hasInk reports whether s contains at least one character that is neither
// whitespace nor a control character.
func hasInk(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) && !unicode.IsControl(r) {
			return true
		}
	}
	return false
}

func overlaps(r prunedoc.CharRange, start, end int) bool {
	return r.Start < end && r.End > start
}

// Classifier decides whether a page is blank. A page is blank only when all
// four signals are negative: no visible text, no table with text, no inline
// image or embedded object, no anchored shape with text. Any host failure
// while inspecting content counts as content: a page is never deleted on
// uncertainty.
type Classifier struct {
	Logger *slog.Logger
}

// IsPageBlank inspects the given 1-based page of the document.
func (c *Classifier) IsPageBlank(doc prunedoc.Document, page int) bool {
	total, err := doc.PageCount()
	if err != nil || page < 1 || page > total {
		return false
	}
	start, end, err := pageBounds(doc, page, total)
	if err != nil || end <= start {
		c.debug("page bounds unavailable", page, err)
		return false
	}

	text, err := doc.Text(start, end)
	if err != nil {
		c.debug("page text unavailable", page, err)
		return false
	}
	if hasInk(text) {
		return false
	}

	tables, err := doc.Tables()
	if err != nil {
		c.debug("tables unavailable", page, err)
		return false
	}
	for _, tbl := range tables {
		if overlaps(tbl.Range, start, end) && hasInk(tbl.Text) {
			return false
		}
	}

	inline, err := doc.InlineObjects()
	if err != nil {
		c.debug("inline objects unavailable", page, err)
		return false
	}
	for _, obj := range inline {
		if overlaps(obj, start, end) {
			return false
		}
	}

	shapes, err := doc.Shapes()
	if err != nil {
		c.debug("shapes unavailable", page, err)
		return false
	}
	for _, sh := range shapes {
		if sh.Anchor >= start && sh.Anchor < end && hasInk(sh.Text) {
			return false
		}
	}

	return true
}

func (c *Classifier) debug(msg string, page int, err error) {
	if c.Logger != nil {
		c.Logger.Debug(msg, "page", page, "error", err)
	}
}
