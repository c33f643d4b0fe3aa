// Package prunedoc removes empty template sections and blank pages from
// paginated report documents. Reports are rendered from fixed templates in
// which every section appears as a title page followed by a data-table page,
// even when the section has no data; this package finds the title+table pair
// of every flagged-empty section, deletes it, removes any blank pages left
// behind, and keeps table-of-contents page references consistent.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., pdf/, docx/, pdfcpu/), the engine
// itself lives in prune/, and memdoc/ provides an in-memory document host.
package prunedoc
