package prune

import "github.com/mvaldes/prunedoc"

// pageBounds returns the character range [start,end) occupied by the given
// 1-based page: from the page's own start offset to the start offset of the
// next page, or the document end for the last page.
func pageBounds(doc prunedoc.Document, page, total int) (int, int, error) {
	start, err := doc.OffsetOfPageStart(page)
	if err != nil {
		return 0, 0, err
	}
	var end int
	if page >= total {
		end, err = doc.Length()
	} else {
		end, err = doc.OffsetOfPageStart(page + 1)
	}
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// DeletePageRange removes the inclusive page range [startPage,endPage] from
// the document by resolving it to a character range and deleting that range.
// It requires 1 <= startPage <= endPage <= PageCount.
//
// Host rejections (a locked region, a stale page boundary) are expected and
// recoverable; they come back as EDELETEFAILED so the caller can log the
// skipped range and proceed with the next one.
func DeletePageRange(doc prunedoc.Document, startPage, endPage int) error {
	if startPage < 1 || endPage < startPage {
		return prunedoc.Errorf(prunedoc.EINVALID, "invalid page range %d-%d", startPage, endPage)
	}
	total, err := doc.PageCount()
	if err != nil {
		return prunedoc.Errorf(prunedoc.EDELETEFAILED, "page count: %v", err)
	}
	if endPage > total {
		return prunedoc.Errorf(prunedoc.EINVALID, "page range %d-%d exceeds %d pages", startPage, endPage, total)
	}
	start, err := doc.OffsetOfPageStart(startPage)
	if err != nil {
		return prunedoc.Errorf(prunedoc.EDELETEFAILED, "offset of page %d: %v", startPage, err)
	}
	var end int
	if endPage >= total {
		end, err = doc.Length()
	} else {
		end, err = doc.OffsetOfPageStart(endPage + 1)
	}
	if err != nil {
		return prunedoc.Errorf(prunedoc.EDELETEFAILED, "offset past page %d: %v", endPage, err)
	}
	if end <= start {
		return prunedoc.Errorf(prunedoc.EDELETEFAILED, "empty character range for pages %d-%d", startPage, endPage)
	}
	if err := doc.DeleteRange(start, end); err != nil {
		return prunedoc.Errorf(prunedoc.EDELETEFAILED, "delete pages %d-%d: %v", startPage, endPage, err)
	}
	return nil
}
