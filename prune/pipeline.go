// Package prune implements the section pruning and blank-page compaction
// engine. It coordinates TOC detection, title-page location, structural
// page deletion, and blank-page classification over an injected document
// host, and exposes a pipeline that runs the full
// render→prune→recompact→finalize sequence for one report document.
package prune

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mvaldes/prunedoc"
)

// Pipeline runs the full pruning sequence for report documents. All
// capabilities are injected; the pipeline owns no ambient state and each Run
// acquires and releases its own document.
type Pipeline struct {
	Host      prunedoc.Host
	Extractor prunedoc.Extractor
	Sections  prunedoc.SectionSource

	// Artifact optionally compacts the exported artifact after the live
	// passes, for blank pages only visible in the rendered output.
	Artifact prunedoc.ArtifactCompactor

	Logger *slog.Logger

	// Concurrency bounds RunAll. Defaults to 2: document hosts are heavy
	// and each run owns a full host session.
	Concurrency int
}

// Request identifies one report document to process.
type Request struct {
	// Instance is the report instance key passed to the section source.
	Instance string

	// DocPath is the editable document.
	DocPath string

	// SnapshotPath receives the rendered snapshot used for text search.
	// The file is removed when the run finishes.
	SnapshotPath string

	// OutPath, if set, receives the final exported artifact.
	OutPath string
}

// Result reports what one run removed.
type Result struct {
	Instance       string
	SectionPages   int // pages removed by section pruning
	BlankPages     int // pages removed by live blank-page compaction
	ArtifactPages  int // pages removed from the exported artifact
	FinalPageCount int

	// Err records a per-document failure in RunAll; other documents are
	// unaffected.
	Err error
}

// Pipeline states, in order. The pipeline is a linear state machine; a run
// either reaches stateFinalized or fails that document as a whole.
type state int

const (
	stateRendered state = iota
	stateSectionsPruned
	stateRecompacted
	stateFinalized
)

func (s state) String() string {
	switch s {
	case stateRendered:
		return "rendered"
	case stateSectionsPruned:
		return "sections_pruned"
	case stateRecompacted:
		return "recompacted"
	case stateFinalized:
		return "finalized"
	}
	return "unknown"
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Run processes one document: export a snapshot, prune empty sections,
// re-export if anything was pruned, compact blank pages, save and export
// the final artifact. The document is released on every exit path.
//
// Only a host acquisition failure (EUNAVAILABLE) or a broken host session
// is fatal; missing titles, rejected deletions, and classification errors
// degrade the output instead of failing the run. There is no mid-run
// cancellation: once structural edits begin the run proceeds to the end.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if req.DocPath == "" || req.SnapshotPath == "" {
		return nil, prunedoc.Errorf(prunedoc.EINVALID, "document and snapshot paths required")
	}
	logger := p.logger().With("run", uuid.NewString()[:8], "instance", req.Instance)

	specs, err := p.Sections.Sections(ctx, req.Instance)
	if err != nil {
		return nil, fmt.Errorf("section specs for %q: %w", req.Instance, err)
	}

	doc, err := p.Host.Open(ctx, req.DocPath)
	if err != nil {
		return nil, prunedoc.Errorf(prunedoc.EUNAVAILABLE, "open %s: %v", req.DocPath, err)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			logger.Warn("document close failed", "error", cerr)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Instance: req.Instance}

	// Rendered: snapshot the document for text search.
	if err := p.exportSnapshot(doc, req.SnapshotPath, logger, stateRendered); err != nil {
		return nil, err
	}
	defer os.Remove(req.SnapshotPath)

	// Rendered → SectionsPruned.
	pruner := &Pruner{Locator: p.titleLocator(ctx, doc, req.SnapshotPath, logger), Logger: logger}
	res.SectionPages, err = pruner.Prune(ctx, doc, specs)
	if err != nil {
		return nil, fmt.Errorf("prune sections: %w", err)
	}
	logger.Info("sections pruned", "state", stateSectionsPruned, "pages_removed", res.SectionPages)

	// SectionsPruned → Recompacted. Structural edits shift pagination, so
	// the snapshot must be re-exported before blank-page detection.
	if res.SectionPages > 0 {
		if err := doc.UpdateTOC(); err != nil {
			logger.Warn("toc refresh failed", "error", err)
		}
		if err := doc.Save(); err != nil {
			return nil, fmt.Errorf("save after pruning: %w", err)
		}
		if err := p.exportSnapshot(doc, req.SnapshotPath, logger, stateSectionsPruned); err != nil {
			return nil, err
		}
	}

	compactor := &Compactor{Classifier: &Classifier{Logger: logger}, Logger: logger}
	res.BlankPages, err = compactor.Compact(doc)
	if err != nil {
		return nil, fmt.Errorf("compact blank pages: %w", err)
	}
	logger.Info("blank pages compacted", "state", stateRecompacted, "pages_removed", res.BlankPages)

	// Recompacted → Finalized.
	if err := doc.Save(); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if req.OutPath != "" {
		if err := doc.Export(req.OutPath); err != nil {
			return nil, fmt.Errorf("export final artifact: %w", err)
		}
		if p.Artifact != nil {
			n, err := p.Artifact.CompactFile(ctx, req.OutPath)
			if err != nil {
				logger.Warn("artifact compaction failed", "error", err)
			} else {
				res.ArtifactPages = n
			}
		}
	}
	if res.FinalPageCount, err = doc.PageCount(); err != nil {
		logger.Warn("final page count unavailable", "error", err)
	}
	logger.Info("pipeline finished", "state", stateFinalized,
		"section_pages", res.SectionPages, "blank_pages", res.BlankPages,
		"final_pages", res.FinalPageCount)
	return res, nil
}

// RunAll processes independent documents concurrently, one host session per
// document. A failure is recorded on that document's Result and never
// affects the others.
func (p *Pipeline) RunAll(ctx context.Context, reqs []Request) []*Result {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	results := make([]*Result, len(reqs))
	g := &errgroup.Group{}
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := p.Run(ctx, req)
			if err != nil {
				res = &Result{Instance: req.Instance, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	// Workers never return errors; per-document failures land on Results.
	_ = g.Wait()
	return results
}

// titleLocator builds the two-level title search: paragraph-granularity
// candidates from the live document first, degrading once to page-level
// search over the rendered snapshot.
func (p *Pipeline) titleLocator(ctx context.Context, doc prunedoc.Document, snapshot string, logger *slog.Logger) TitleLocator {
	fine := &Locator{
		Source: &DocumentCandidates{Doc: doc},
		TOC:    LocateTOC(doc),
	}
	toc, err := LocateTOCPages(ctx, p.Extractor, snapshot)
	if err != nil {
		logger.Warn("snapshot toc detection failed, all pages eligible", "error", err)
		toc = prunedoc.TocRegion{}
	}
	coarse := &Locator{
		Source: &SnapshotCandidates{Extractor: p.Extractor, Path: snapshot},
		TOC:    toc,
	}
	return &Fallback{Primary: fine, Secondary: coarse}
}

func (p *Pipeline) exportSnapshot(doc prunedoc.Document, path string, logger *slog.Logger, from state) error {
	if err := doc.Export(path); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}
	logger.Debug("snapshot exported", "state", from, "path", path, "hash", snapshotHash(path))
	return nil
}

// snapshotHash fingerprints a rendered snapshot so successive exports of one
// run can be told apart in the logs.
func snapshotHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
