package mock

import (
	"context"

	"github.com/mvaldes/prunedoc"
)

var _ prunedoc.Host = (*Host)(nil)

// Host is a mock implementation of prunedoc.Host.
type Host struct {
	OpenFn func(ctx context.Context, path string) (prunedoc.Document, error)
}

func (h *Host) Open(ctx context.Context, path string) (prunedoc.Document, error) {
	return h.OpenFn(ctx, path)
}

var _ prunedoc.Document = (*Document)(nil)

// Document is a mock implementation of prunedoc.Document.
type Document struct {
	CloseFn              func() error
	SaveFn               func() error
	RepaginateFn         func() error
	PageCountFn          func() (int, error)
	LengthFn             func() (int, error)
	OffsetOfPageStartFn  func(page int) (int, error)
	PageNumberOfOffsetFn func(offset int) (int, error)
	TextFn               func(start, end int) (string, error)
	DeleteRangeFn        func(start, end int) error
	ParagraphsFn         func() ([]prunedoc.Paragraph, error)
	ShapesFn             func() ([]prunedoc.Shape, error)
	TablesFn             func() ([]prunedoc.Table, error)
	InlineObjectsFn      func() ([]prunedoc.CharRange, error)
	TableOfContentsFn    func() ([]prunedoc.CharRange, error)
	UpdateTOCFn          func() error
	ExportFn             func(path string) error
}

func (d *Document) Close() error {
	return d.CloseFn()
}

func (d *Document) Save() error {
	return d.SaveFn()
}

func (d *Document) Repaginate() error {
	return d.RepaginateFn()
}

func (d *Document) PageCount() (int, error) {
	return d.PageCountFn()
}

func (d *Document) Length() (int, error) {
	return d.LengthFn()
}

func (d *Document) OffsetOfPageStart(page int) (int, error) {
	return d.OffsetOfPageStartFn(page)
}

func (d *Document) PageNumberOfOffset(offset int) (int, error) {
	return d.PageNumberOfOffsetFn(offset)
}

func (d *Document) Text(start, end int) (string, error) {
	return d.TextFn(start, end)
}

func (d *Document) DeleteRange(start, end int) error {
	return d.DeleteRangeFn(start, end)
}

func (d *Document) Paragraphs() ([]prunedoc.Paragraph, error) {
	return d.ParagraphsFn()
}

func (d *Document) Shapes() ([]prunedoc.Shape, error) {
	return d.ShapesFn()
}

func (d *Document) Tables() ([]prunedoc.Table, error) {
	return d.TablesFn()
}

func (d *Document) InlineObjects() ([]prunedoc.CharRange, error) {
	return d.InlineObjectsFn()
}

func (d *Document) TableOfContents() ([]prunedoc.CharRange, error) {
	return d.TableOfContentsFn()
}

func (d *Document) UpdateTOC() error {
	return d.UpdateTOCFn()
}

func (d *Document) Export(path string) error {
	return d.ExportFn(path)
}
