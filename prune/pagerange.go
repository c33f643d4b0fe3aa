package prune

import "github.com/mvaldes/prunedoc"

// PagesOfRange converts the half-open character range [start,end) to the
// inclusive page range covering it. An empty range or a failed page lookup
// yields ok=false.
func PagesOfRange(doc prunedoc.Document, start, end int) (prunedoc.PageRange, bool) {
	if end <= start {
		return prunedoc.PageRange{}, false
	}
	first, err := doc.PageNumberOfOffset(start)
	if err != nil {
		return prunedoc.PageRange{}, false
	}
	last, err := doc.PageNumberOfOffset(end - 1)
	if err != nil {
		return prunedoc.PageRange{}, false
	}
	if last < first {
		last = first
	}
	return prunedoc.PageRange{Start: first, End: last}, true
}
