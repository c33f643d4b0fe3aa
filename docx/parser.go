// Package docx opens WordprocessingML (.docx) files as read-only
// prunedoc.Documents. Pagination follows the page-break markers the word
// processor left in the document (w:lastRenderedPageBreak and explicit
// page breaks), so page numbers match the last render of the file.
//
// The host is read-only: structural edits belong to the editing backend
// that owns the file, so the mutating interface methods report
// EUNSUPPORTED instead of probing for optional capabilities.
package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/mvaldes/prunedoc"
)

type line struct {
	text  string
	style string
	toc   bool
}

type pageData struct {
	lines  []line
	tables []string
	shapes []string
	inline int
}

func (p *pageData) text() string {
	parts := make([]string, len(p.lines))
	for i, l := range p.lines {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}

// builder accumulates pages while walking the document body.
type builder struct {
	styles map[string]string // style ID -> display name
	pages  []*pageData
	cur    *pageData

	text  strings.Builder // current paragraph fragment
	style string
	toc   bool
}

func newBuilder(styles map[string]string) *builder {
	b := &builder{styles: styles}
	b.newPage()
	return b
}

func (b *builder) newPage() {
	b.cur = &pageData{}
	b.pages = append(b.pages, b.cur)
}

// endLine closes the current paragraph fragment as one line on the current
// page.
func (b *builder) endLine() {
	b.cur.lines = append(b.cur.lines, line{text: b.text.String(), style: b.style, toc: b.toc})
	b.text.Reset()
}

// pageBreak ends the pending fragment and starts a new page, unless the
// current page is still completely empty.
func (b *builder) pageBreak() {
	if b.text.Len() > 0 {
		b.endLine()
	}
	if len(b.cur.lines) == 0 && len(b.cur.tables) == 0 && b.cur.inline == 0 {
		return
	}
	b.newPage()
}

func (b *builder) walkBody(body *etree.Element, inTOC bool) {
	for _, el := range body.ChildElements() {
		switch el.Tag {
		case "p":
			b.paragraph(el, inTOC)
		case "tbl":
			b.cur.tables = append(b.cur.tables, flattenText(el))
		case "sdt":
			// TOC constructs ship inside structured document tags.
			toc := inTOC || isTOCGallery(el)
			if content := el.FindElement("sdtContent"); content != nil {
				b.walkBody(content, toc)
			}
		}
	}
}

func (b *builder) paragraph(p *etree.Element, inTOC bool) {
	b.style = ""
	b.toc = inTOC
	if pStyle := p.FindElement("pPr/pStyle"); pStyle != nil {
		id := pStyle.SelectAttrValue("w:val", "")
		if name, ok := b.styles[id]; ok {
			b.style = name
		} else {
			b.style = id
		}
		if strings.HasPrefix(strings.ToLower(b.style), "toc") {
			b.toc = true
		}
	}
	b.runs(p)
	b.endLine()
}

// runs walks the run-level content of a paragraph, including runs nested in
// hyperlinks and fields.
func (b *builder) runs(el *etree.Element) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "r":
			b.run(child)
		case "hyperlink", "smartTag", "ins", "fldSimple":
			if instr := child.SelectAttrValue("w:instr", ""); strings.Contains(instr, "TOC") {
				b.toc = true
			}
			b.runs(child)
		}
	}
}

// findDeep returns the first descendant of el with the given local tag.
func findDeep(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := findDeep(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func (b *builder) run(r *etree.Element) {
	if tb := findDeep(r, "txbxContent"); tb != nil {
		b.cur.shapes = append(b.cur.shapes, flattenText(tb))
		return
	}
	for _, el := range r.ChildElements() {
		switch el.Tag {
		case "t":
			b.text.WriteString(el.Text())
		case "tab":
			b.text.WriteString("\t")
		case "br":
			if el.SelectAttrValue("w:type", "") == "page" {
				b.pageBreak()
			} else {
				b.text.WriteString("\n")
			}
		case "lastRenderedPageBreak":
			b.pageBreak()
		case "drawing", "object", "pict":
			b.cur.inline++
		case "instrText":
			if strings.Contains(el.Text(), "TOC") {
				b.toc = true
			}
		}
	}
}

// flattenText joins every text run under el with spaces.
func flattenText(el *etree.Element) string {
	var parts []string
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if child.Tag == "t" {
				if s := child.Text(); s != "" {
					parts = append(parts, s)
				}
				continue
			}
			walk(child)
		}
	}
	walk(el)
	return strings.Join(parts, " ")
}

func isTOCGallery(sdt *etree.Element) bool {
	gallery := sdt.FindElement("sdtPr/docPartObj/docPartGallery")
	if gallery == nil {
		return false
	}
	return strings.Contains(gallery.SelectAttrValue("w:val", ""), "Table of Contents")
}

// parseStyles maps style IDs to display names from word/styles.xml.
func parseStyles(data []byte) map[string]string {
	out := map[string]string{}
	if len(data) == 0 {
		return out
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return out
	}
	root := doc.Root()
	if root == nil {
		return out
	}
	for _, style := range root.FindElements("style") {
		id := style.SelectAttrValue("w:styleId", "")
		if id == "" {
			continue
		}
		if name := style.FindElement("name"); name != nil {
			out[id] = name.SelectAttrValue("w:val", id)
		}
	}
	return out
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, prunedoc.Errorf(prunedoc.ENOTFOUND, "%s not found in archive", name)
}

// Parse builds a Document from the raw bytes of a .docx archive.
func Parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, prunedoc.Errorf(prunedoc.EINVALID, "not a docx archive: %v", err)
	}

	docXML, err := readZipFile(zr, "word/document.xml")
	if err != nil {
		return nil, err
	}
	stylesXML, _ := readZipFile(zr, "word/styles.xml")

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(docXML); err != nil {
		return nil, prunedoc.Errorf(prunedoc.EINVALID, "parse document.xml: %v", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, prunedoc.Errorf(prunedoc.EINVALID, "empty document.xml")
	}
	body := root.FindElement("body")
	if body == nil {
		return nil, prunedoc.Errorf(prunedoc.EINVALID, "document.xml has no body")
	}

	b := newBuilder(parseStyles(stylesXML))
	b.walkBody(body, false)
	return &Document{pages: b.pages}, nil
}
