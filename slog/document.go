// Package slog provides logging decorators for prunedoc interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mvaldes/prunedoc"
)

// Ensure LoggingDocument implements prunedoc.Document.
var _ prunedoc.Document = (*LoggingDocument)(nil)

// LoggingDocument wraps a Document with debug logging for structural edits
// and lifecycle calls. Read-only queries pass through unlogged.
type LoggingDocument struct {
	next   prunedoc.Document
	logger *slog.Logger
}

// NewLoggingDocument creates a new LoggingDocument.
func NewLoggingDocument(next prunedoc.Document, logger *slog.Logger) *LoggingDocument {
	return &LoggingDocument{next: next, logger: logger}
}

// DeleteRange logs the range, the outcome and the duration of the edit.
func (d *LoggingDocument) DeleteRange(start, end int) error {
	begin := time.Now()
	err := d.next.DeleteRange(start, end)
	d.logger.Debug("delete range",
		"start", start,
		"end", end,
		"duration", time.Since(begin),
		"error", err,
	)
	return err
}

// Repaginate logs the repagination and its duration.
func (d *LoggingDocument) Repaginate() error {
	begin := time.Now()
	err := d.next.Repaginate()
	d.logger.Debug("repaginate", "duration", time.Since(begin), "error", err)
	return err
}

// Save logs the save and its duration.
func (d *LoggingDocument) Save() error {
	begin := time.Now()
	err := d.next.Save()
	d.logger.Debug("save", "duration", time.Since(begin), "error", err)
	return err
}

// Export logs the export target and its duration.
func (d *LoggingDocument) Export(path string) error {
	begin := time.Now()
	err := d.next.Export(path)
	d.logger.Debug("export", "path", path, "duration", time.Since(begin), "error", err)
	return err
}

// Close delegates to the wrapped document.
func (d *LoggingDocument) Close() error { return d.next.Close() }

// UpdateTOC delegates to the wrapped document.
func (d *LoggingDocument) UpdateTOC() error { return d.next.UpdateTOC() }

// PageCount delegates to the wrapped document.
func (d *LoggingDocument) PageCount() (int, error) { return d.next.PageCount() }

// Length delegates to the wrapped document.
func (d *LoggingDocument) Length() (int, error) { return d.next.Length() }

// OffsetOfPageStart delegates to the wrapped document.
func (d *LoggingDocument) OffsetOfPageStart(page int) (int, error) {
	return d.next.OffsetOfPageStart(page)
}

// PageNumberOfOffset delegates to the wrapped document.
func (d *LoggingDocument) PageNumberOfOffset(offset int) (int, error) {
	return d.next.PageNumberOfOffset(offset)
}

// Text delegates to the wrapped document.
func (d *LoggingDocument) Text(start, end int) (string, error) { return d.next.Text(start, end) }

// Paragraphs delegates to the wrapped document.
func (d *LoggingDocument) Paragraphs() ([]prunedoc.Paragraph, error) { return d.next.Paragraphs() }

// Shapes delegates to the wrapped document.
func (d *LoggingDocument) Shapes() ([]prunedoc.Shape, error) { return d.next.Shapes() }

// Tables delegates to the wrapped document.
func (d *LoggingDocument) Tables() ([]prunedoc.Table, error) { return d.next.Tables() }

// InlineObjects delegates to the wrapped document.
func (d *LoggingDocument) InlineObjects() ([]prunedoc.CharRange, error) {
	return d.next.InlineObjects()
}

// TableOfContents delegates to the wrapped document.
func (d *LoggingDocument) TableOfContents() ([]prunedoc.CharRange, error) {
	return d.next.TableOfContents()
}

// Ensure LoggingHost implements prunedoc.Host.
var _ prunedoc.Host = (*LoggingHost)(nil)

// LoggingHost wraps a Host so that every opened document is wrapped in a
// LoggingDocument.
type LoggingHost struct {
	next   prunedoc.Host
	logger *slog.Logger
}

// NewLoggingHost creates a new LoggingHost.
func NewLoggingHost(next prunedoc.Host, logger *slog.Logger) *LoggingHost {
	return &LoggingHost{next: next, logger: logger}
}

// Open logs the acquisition and wraps the resulting document.
func (h *LoggingHost) Open(ctx context.Context, path string) (prunedoc.Document, error) {
	begin := time.Now()
	doc, err := h.next.Open(ctx, path)
	h.logger.Debug("open document", "path", path, "duration", time.Since(begin), "error", err)
	if err != nil {
		return nil, err
	}
	return NewLoggingDocument(doc, h.logger), nil
}
