package hwpx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/hanpama/hwpmd/document"
	"github.com/hanpama/hwpmd/internal/outline"
)

// Element names are compared on etree's local Tag, so any namespace prefix
// (hp:, hs:, hc:) is ignored.
const (
	tagParagraph = "p"
	tagRun       = "run"
	tagText      = "t"
	tagTab       = "tab"
	tagLineBreak = "lineBreak"
	tagParaPr    = "pPr"
	tagTable     = "tbl"
	tagRow       = "tr"
	tagCell      = "tc"
	tagSubList   = "subList"

	attrOutlineLevel = "outlineLevel"
	attrStyleIDRef   = "styleIDRef"
)

// walker turns the element tree of one section into document elements.
type walker struct {
	styles outline.StyleLevels
}

func (w *walker) section(root *etree.Element) []document.Element {
	var out []document.Element
	w.walk(root, &out)
	return out
}

// walk emits paragraphs and top-level tables in document order. Elements
// other than paragraphs and tables only contribute their children.
func (w *walker) walk(el *etree.Element, out *[]document.Element) {
	switch el.Tag {
	case tagTable:
		if t := w.table(el); t != nil {
			*out = append(*out, outline.PlaceTable(t)...)
		}
	case tagParagraph:
		if p := w.paragraph(el); p != nil {
			*out = append(*out, p)
		}
		for _, obj := range embeddedObjects(el) {
			w.walk(obj, out)
		}
	default:
		for _, child := range el.ChildElements() {
			w.walk(child, out)
		}
	}
}

// embeddedObjects returns the tables and sub-lists anchored in a paragraph,
// either directly or inside one of its runs.
func embeddedObjects(p *etree.Element) []*etree.Element {
	var objs []*etree.Element
	for _, child := range p.ChildElements() {
		switch child.Tag {
		case tagTable, tagSubList:
			objs = append(objs, child)
		case tagRun:
			objs = append(objs, children(child, tagTable)...)
		}
	}
	return objs
}

func (w *walker) paragraph(p *etree.Element) *document.Paragraph {
	text := paragraphText(p)
	if text == "" {
		return nil
	}
	return &document.Paragraph{Text: text, HeadingLevel: w.headingLevel(p)}
}

// paragraphText concatenates the text of every run's <t> with any text
// trailing it inside the run, then any <t> placed directly in the paragraph.
func paragraphText(p *etree.Element) string {
	var b strings.Builder
	for _, run := range children(p, tagRun) {
		tail := false
		for _, tok := range run.Child {
			switch v := tok.(type) {
			case *etree.Element:
				tail = v.Tag == tagText
				if tail {
					writeText(&b, v)
				}
			case *etree.CharData:
				if tail {
					b.WriteString(v.Data)
				}
			}
		}
	}
	for _, t := range children(p, tagText) {
		writeText(&b, t)
	}
	return strings.TrimSpace(b.String())
}

func writeText(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch v := tok.(type) {
		case *etree.CharData:
			b.WriteString(v.Data)
		case *etree.Element:
			switch v.Tag {
			case tagTab:
				b.WriteByte('\t')
			case tagLineBreak:
				b.WriteByte('\n')
			default:
				writeText(b, v)
			}
		}
	}
}

// headingLevel resolves a paragraph's heading level: an explicit outline
// level of 1-6 wins, then the referenced style (through header.xml, then by
// matching the reference itself), else body text.
func (w *walker) headingLevel(p *etree.Element) int {
	props := children(p, tagParaPr)
	for _, ppr := range props {
		if attr := ppr.SelectAttr(attrOutlineLevel); attr != nil {
			if n, err := strconv.Atoi(strings.TrimSpace(attr.Value)); err == nil && n >= 1 && n <= 6 {
				return n
			}
		}
	}

	styleID := p.SelectAttrValue(attrStyleIDRef, "")
	for _, ppr := range props {
		if styleID != "" {
			break
		}
		styleID = ppr.SelectAttrValue(attrStyleIDRef, "")
	}
	if styleID == "" {
		return 0
	}
	if id, err := strconv.Atoi(styleID); err == nil {
		if level := w.styles.Level(id); level > 0 {
			return level
		}
	}
	return outline.HeadingLevel(styleID)
}

func (w *walker) table(el *etree.Element) *document.Table {
	t := &document.Table{}
	for _, tr := range children(el, tagRow) {
		row := &document.Row{}
		for _, tc := range children(tr, tagCell) {
			cell := &document.Cell{}
			for _, child := range tc.ChildElements() {
				w.cellContent(child, cell)
			}
			row.Cells = append(row.Cells, cell)
		}
		if len(row.Cells) > 0 {
			t.Rows = append(t.Rows, row)
		}
	}
	if len(t.Rows) == 0 {
		return nil
	}
	return t
}

func (w *walker) cellContent(el *etree.Element, cell *document.Cell) {
	switch el.Tag {
	case tagParagraph:
		if p := w.paragraph(el); p != nil {
			cell.Content = append(cell.Content, p)
		}
		for _, obj := range embeddedObjects(el) {
			w.cellContent(obj, cell)
		}
	case tagTable:
		if t := w.table(el); t != nil {
			cell.Content = append(cell.Content, t)
		}
	case tagSubList:
		for _, child := range el.ChildElements() {
			w.cellContent(child, cell)
		}
	}
}

func children(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}
