package prune_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes/prunedoc"
	"github.com/mvaldes/prunedoc/memdoc"
	"github.com/mvaldes/prunedoc/mock"
	"github.com/mvaldes/prunedoc/prune"
)

// reportDoc is a six-page report: TOC, a populated section, an empty
// section (title + table page), another populated section, and a blank
// trailing page.
func reportDoc() *memdoc.Document {
	return memdoc.New(
		memdoc.NewPage("ÍNDICE\n2. MEDICIÓN DE RED ... 3"),
		memdoc.NewPage("1. ALCANCE\ncontenido"),
		memdoc.NewPage("2. MEDICIÓN DE RED"),
		memdoc.NewPage(" "),
		memdoc.NewPage("3. MEDICIÓN DE ILUMINACIÓN\ncontenido"),
		memdoc.NewPage(" "),
	)
}

func reportSpecs() []prunedoc.SectionSpec {
	return []prunedoc.SectionSpec{
		{Key: "scope", Title: "1. ALCANCE"},
		{Key: "network", Title: "2. MEDICIÓN DE RED", Empty: true},
		{Key: "lighting", Title: "3. MEDICIÓN DE ILUMINACIÓN"},
	}
}

func sectionSource(specs []prunedoc.SectionSpec) *mock.SectionSource {
	return &mock.SectionSource{
		SectionsFn: func(_ context.Context, _ string) ([]prunedoc.SectionSpec, error) {
			return specs, nil
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("prunes empty sections then compacts blank pages", func(t *testing.T) {
		t.Parallel()
		doc := reportDoc()
		dir := t.TempDir()
		p := &prune.Pipeline{
			Host:      &memdoc.Host{Docs: map[string]*memdoc.Document{"report.docx": doc}},
			Extractor: &memdoc.Extractor{},
			Sections:  sectionSource(reportSpecs()),
		}

		res, err := p.Run(context.Background(), prune.Request{
			Instance:     "plant-7",
			DocPath:      "report.docx",
			SnapshotPath: filepath.Join(dir, "snapshot.txt"),
		})

		require.NoError(t, err)
		assert.Equal(t, "plant-7", res.Instance)
		assert.Equal(t, 2, res.SectionPages)
		assert.Equal(t, 1, res.BlankPages)
		assert.Equal(t, 3, res.FinalPageCount)
		assert.Equal(t, []string{
			"ÍNDICE\n2. MEDICIÓN DE RED ... 3",
			"1. ALCANCE\ncontenido",
			"3. MEDICIÓN DE ILUMINACIÓN\ncontenido",
		}, doc.PageTexts())
		assert.True(t, doc.Closed())
		assert.GreaterOrEqual(t, doc.Saves(), 2)
		assert.NoFileExists(t, filepath.Join(dir, "snapshot.txt"))
	})

	t.Run("exports and compacts the final artifact", func(t *testing.T) {
		t.Parallel()
		doc := reportDoc()
		dir := t.TempDir()
		out := filepath.Join(dir, "report.pdf")
		var compacted string
		p := &prune.Pipeline{
			Host:      &memdoc.Host{Docs: map[string]*memdoc.Document{"report.docx": doc}},
			Extractor: &memdoc.Extractor{},
			Sections:  sectionSource(reportSpecs()),
			Artifact: &mock.ArtifactCompactor{
				CompactFileFn: func(_ context.Context, path string) (int, error) {
					compacted = path
					return 1, nil
				},
			},
		}

		res, err := p.Run(context.Background(), prune.Request{
			Instance:     "plant-7",
			DocPath:      "report.docx",
			SnapshotPath: filepath.Join(dir, "snapshot.txt"),
			OutPath:      out,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.ArtifactPages)
		assert.Equal(t, out, compacted)
		assert.FileExists(t, out)
	})

	t.Run("artifact compaction failure degrades the result", func(t *testing.T) {
		t.Parallel()
		doc := reportDoc()
		dir := t.TempDir()
		p := &prune.Pipeline{
			Host:      &memdoc.Host{Docs: map[string]*memdoc.Document{"report.docx": doc}},
			Extractor: &memdoc.Extractor{},
			Sections:  sectionSource(reportSpecs()),
			Artifact: &mock.ArtifactCompactor{
				CompactFileFn: func(_ context.Context, _ string) (int, error) {
					return 0, prunedoc.Errorf(prunedoc.EDELETEFAILED, "artifact locked")
				},
			},
		}

		res, err := p.Run(context.Background(), prune.Request{
			Instance:     "plant-7",
			DocPath:      "report.docx",
			SnapshotPath: filepath.Join(dir, "snapshot.txt"),
			OutPath:      filepath.Join(dir, "report.pdf"),
		})

		require.NoError(t, err)
		assert.Equal(t, 0, res.ArtifactPages)
	})

	t.Run("requires document and snapshot paths", func(t *testing.T) {
		t.Parallel()
		p := &prune.Pipeline{}

		_, err := p.Run(context.Background(), prune.Request{DocPath: "report.docx"})

		assert.Equal(t, prunedoc.EINVALID, prunedoc.ErrorCode(err))
	})

	t.Run("host acquisition failure is fatal", func(t *testing.T) {
		t.Parallel()
		p := &prune.Pipeline{
			Host:      &memdoc.Host{},
			Extractor: &memdoc.Extractor{},
			Sections:  sectionSource(nil),
		}

		_, err := p.Run(context.Background(), prune.Request{
			Instance:     "plant-7",
			DocPath:      "missing.docx",
			SnapshotPath: filepath.Join(t.TempDir(), "snapshot.txt"),
		})

		assert.Equal(t, prunedoc.EUNAVAILABLE, prunedoc.ErrorCode(err))
	})

	t.Run("section source failure is fatal", func(t *testing.T) {
		t.Parallel()
		p := &prune.Pipeline{
			Host: &memdoc.Host{Docs: map[string]*memdoc.Document{"report.docx": reportDoc()}},
			Sections: &mock.SectionSource{
				SectionsFn: func(_ context.Context, _ string) ([]prunedoc.SectionSpec, error) {
					return nil, prunedoc.Errorf(prunedoc.EUNAVAILABLE, "aggregator offline")
				},
			},
		}

		_, err := p.Run(context.Background(), prune.Request{
			Instance:     "plant-7",
			DocPath:      "report.docx",
			SnapshotPath: filepath.Join(t.TempDir(), "snapshot.txt"),
		})

		require.Error(t, err)
	})

	t.Run("cancellation before edits releases the document", func(t *testing.T) {
		t.Parallel()
		doc := reportDoc()
		p := &prune.Pipeline{
			Host:      &memdoc.Host{Docs: map[string]*memdoc.Document{"report.docx": doc}},
			Extractor: &memdoc.Extractor{},
			Sections:  sectionSource(reportSpecs()),
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.Run(ctx, prune.Request{
			Instance:     "plant-7",
			DocPath:      "report.docx",
			SnapshotPath: filepath.Join(t.TempDir(), "snapshot.txt"),
		})

		require.Error(t, err)
		assert.True(t, doc.Closed())
		assert.Len(t, doc.PageTexts(), 6) // no edits happened
	})
}

func TestPipeline_RunAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := reportDoc()
	p := &prune.Pipeline{
		Host:        &memdoc.Host{Docs: map[string]*memdoc.Document{"good.docx": good}},
		Extractor:   &memdoc.Extractor{},
		Sections:    sectionSource(reportSpecs()),
		Concurrency: 2,
	}

	results := p.RunAll(context.Background(), []prune.Request{
		{Instance: "good", DocPath: "good.docx", SnapshotPath: filepath.Join(dir, "good.txt")},
		{Instance: "bad", DocPath: "missing.docx", SnapshotPath: filepath.Join(dir, "bad.txt")},
	})

	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "good", results[0].Instance)
	assert.Equal(t, 2, results[0].SectionPages)
	require.Error(t, results[1].Err)
	assert.Equal(t, "bad", results[1].Instance)
}
