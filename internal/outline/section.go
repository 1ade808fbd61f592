package outline

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hanpama/hwpmd/document"
)

// SectionHeading detects section titles laid out as a table:
//
//	| 1 |   | Overview |   |
//	|   |   |          |   |   (optional, must be empty)
//
// and returns the equivalent level-2 heading. It returns nil for any other
// table.
func SectionHeading(t *document.Table) *document.Paragraph {
	if t == nil || len(t.Rows) == 0 || len(t.Rows) > 2 {
		return nil
	}
	first := t.Rows[0]
	if len(first.Cells) != 4 {
		return nil
	}

	num := first.Cells[0].Text()
	gap1 := first.Cells[1].Text()
	title := first.Cells[2].Text()
	gap2 := first.Cells[3].Text()

	if !isDigits(num) || gap1 != "" || title == "" || gap2 != "" {
		return nil
	}

	if len(t.Rows) == 2 {
		for _, c := range t.Rows[1].Cells {
			if c.Text() != "" {
				return nil
			}
		}
	}

	return &document.Paragraph{
		Text:         fmt.Sprintf("%s. %s", num, title),
		HeadingLevel: 2,
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// PlaceTable decides how a top-level table enters a document: as a section
// heading, unwrapped from a 1x1 frame into its paragraphs and nested tables,
// or unchanged.
func PlaceTable(t *document.Table) []document.Element {
	if h := SectionHeading(t); h != nil {
		return []document.Element{h}
	}
	if len(t.Rows) == 1 && len(t.Rows[0].Cells) == 1 {
		return unwrapCell(t.Rows[0].Cells[0])
	}
	return []document.Element{t}
}

func unwrapCell(cell *document.Cell) []document.Element {
	var out []document.Element
	for _, item := range cell.Content {
		switch v := item.(type) {
		case *document.Paragraph:
			if text := strings.TrimSpace(v.Text); text != "" {
				out = append(out, &document.Paragraph{Text: text, HeadingLevel: v.HeadingLevel})
			}
		case *document.Table:
			out = append(out, v)
		}
	}
	return out
}
