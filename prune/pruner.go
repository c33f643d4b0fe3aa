package prune

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mvaldes/prunedoc"
)

// Pruner removes the pages of sections flagged as empty. The fixed template
// convention is one title page followed by exactly one data-table page, so
// each located title contributes the pair {p, p+1} to the plan; no section
// ever contributes a single page or a run longer than two.
type Pruner struct {
	Locator TitleLocator
	Logger  *slog.Logger
}

// Prune locates the title page of every empty-flagged section and pairs it
// with the following page. The pairs are flattened into one deduplicated
// page set, so pairs of adjacent sections overlap safely, and the set is
// deleted page by page in strictly descending order so that not-yet-visited
// page numbers stay valid. Sections whose title cannot be found outside the
// TOC are left intact with a warning; a rejected deletion skips that page
// only. The document is repaginated after the batch. Returns the number of
// pages removed.
func (p *Pruner) Prune(ctx context.Context, doc prunedoc.Document, specs []prunedoc.SectionSpec) (int, error) {
	empty := prunedoc.EmptySections(specs)
	if len(empty) == 0 {
		return 0, nil
	}

	total, err := doc.PageCount()
	if err != nil {
		return 0, err
	}

	// The deletion plan is ephemeral: recomputed per pass, discarded after.
	plan := map[int]struct{}{}
	for _, spec := range empty {
		page, err := p.Locator.Locate(ctx, spec.Title)
		if err != nil {
			if prunedoc.ErrorCode(err) == prunedoc.ENOTFOUND {
				p.warn("section title not found, section left intact",
					"key", spec.Key, "title", spec.Title)
				continue
			}
			return 0, err
		}
		if page < 1 || page > total {
			p.warn("located page out of bounds", "key", spec.Key, "page", page)
			continue
		}
		plan[page] = struct{}{}
		if page+1 <= total {
			plan[page+1] = struct{}{}
		}
	}
	if len(plan) == 0 {
		return 0, nil
	}

	order := make([]int, 0, len(plan))
	for page := range plan {
		order = append(order, page)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(order)))

	removed := 0
	for _, page := range order {
		if err := DeletePageRange(doc, page, page); err != nil {
			p.warn("section page not removed", "page", page, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		if err := doc.Repaginate(); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

func (p *Pruner) warn(msg string, args ...any) {
	if p.Logger != nil {
		p.Logger.Warn(msg, args...)
	}
}
