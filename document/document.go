// Package document defines the format-agnostic document model that every
// parser populates and every writer consumes.
package document

import "strings"

// Element is a top-level item of a Document.
type Element interface {
	IsElement()
}

// CellContent is an item stored inside a table cell: a *Paragraph or a
// nested *Table.
type CellContent interface {
	IsCellContent()
}

// Paragraph represents a paragraph with text.
// HeadingLevel is 0 for body text and 1-6 for headings.
type Paragraph struct {
	Text         string
	HeadingLevel int
}

func (p *Paragraph) IsElement()     {}
func (p *Paragraph) IsCellContent() {}

// Table represents a table as an ordered list of rows.
type Table struct {
	Rows []*Row
}

func (t *Table) IsElement()     {}
func (t *Table) IsCellContent() {}

// Row is one table row.
type Row struct {
	Cells []*Cell
}

// Cell holds paragraphs and nested tables in document order.
type Cell struct {
	Content []CellContent
}

// Text joins the non-blank paragraph texts of the cell with single spaces.
// Nested tables are ignored.
func (c *Cell) Text() string {
	var parts []string
	for _, item := range c.Content {
		if p, ok := item.(*Paragraph); ok && strings.TrimSpace(p.Text) != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ColCount returns the widest row's cell count.
func (t *Table) ColCount() int {
	n := 0
	for _, r := range t.Rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	return n
}

// Image represents an image or drawing object.
type Image struct {
	AltText string
	Source  string
	Data    []byte
	OCRText string
}

func (i *Image) IsElement() {}

// ListItem is a single bullet or numbered list entry.
type ListItem struct {
	Text    string
	Level   int
	Ordered bool
}

func (l *ListItem) IsElement() {}

// Link is a hyperlink.
type Link struct {
	Text string
	URL  string
}

func (l *Link) IsElement() {}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

func (h *HorizontalRule) IsElement() {}

// Metadata describes where a document came from.
type Metadata struct {
	Title        string
	Author       string
	SourceFormat string
	Extra        map[string]string
}

// Document is the root of the model. It is created once per parsed file and
// owned by the caller afterwards.
type Document struct {
	Elements []Element
	Metadata Metadata
}

// New returns an empty document tagged with the given source format.
func New(sourceFormat string) *Document {
	return &Document{
		Metadata: Metadata{
			SourceFormat: sourceFormat,
			Extra:        make(map[string]string),
		},
	}
}

// Append adds elements in order.
func (d *Document) Append(els ...Element) {
	d.Elements = append(d.Elements, els...)
}
