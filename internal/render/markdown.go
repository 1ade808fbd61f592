// Package render turns documents into output formats.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hanpama/hwpmd/document"
)

const minColumnWidth = 3

// MarkdownWriter renders documents as Markdown.
type MarkdownWriter struct{}

func NewMarkdownWriter() *MarkdownWriter { return &MarkdownWriter{} }

func (*MarkdownWriter) FormatName() string    { return "markdown" }
func (*MarkdownWriter) FileExtension() string { return ".md" }

func (*MarkdownWriter) Write(w io.Writer, doc *document.Document) error {
	if _, err := io.WriteString(w, Markdown(doc)); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// Markdown renders doc as blocks separated by blank lines. Consecutive list
// items form one block.
func Markdown(doc *document.Document) string {
	var blocks []string
	els := doc.Elements
	for i := 0; i < len(els); i++ {
		switch v := els[i].(type) {
		case *document.ListItem:
			var lines []string
			counter := 0
			for ; i < len(els); i++ {
				item, ok := els[i].(*document.ListItem)
				if !ok {
					break
				}
				if item.Ordered {
					counter++
				} else {
					counter = 0
				}
				lines = append(lines, listLine(item, counter))
			}
			i--
			blocks = append(blocks, strings.Join(lines, "\n"))
		case *document.Paragraph:
			blocks = append(blocks, markdownParagraph(v))
		case *document.Table:
			if table := markdownTable(v); table != "" {
				blocks = append(blocks, table)
			}
		case *document.Image:
			alt := v.AltText
			if alt == "" {
				alt = "image"
			}
			blocks = append(blocks, fmt.Sprintf("![%s](%s)", alt, v.Source))
		case *document.Link:
			blocks = append(blocks, fmt.Sprintf("[%s](%s)", v.Text, v.URL))
		case *document.HorizontalRule:
			blocks = append(blocks, "---")
		}
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func markdownParagraph(p *document.Paragraph) string {
	if p.HeadingLevel > 0 {
		return strings.Repeat("#", p.HeadingLevel) + " " + p.Text
	}
	return p.Text
}

// markdownTable renders a pipe table whose first row is the header. Rows
// shorter than the widest row are padded with empty cells.
func markdownTable(t *document.Table) string {
	cols := t.ColCount()
	if cols == 0 {
		return ""
	}

	matrix := make([][]string, len(t.Rows))
	widths := make([]int, cols)
	for c := range widths {
		widths[c] = minColumnWidth
	}
	for r, row := range t.Rows {
		matrix[r] = make([]string, cols)
		for c := range cols {
			if c < len(row.Cells) {
				matrix[r][c] = markdownCell(row.Cells[c])
			}
			widths[c] = max(widths[c], displayWidth(matrix[r][c]))
		}
	}

	line := func(cells []string) string {
		padded := make([]string, len(cells))
		for c, text := range cells {
			padded[c] = padRight(text, widths[c])
		}
		return "| " + strings.Join(padded, " | ") + " |"
	}

	rule := make([]string, cols)
	for c, w := range widths {
		rule[c] = strings.Repeat("-", w)
	}

	lines := []string{line(matrix[0]), line(rule)}
	for _, cells := range matrix[1:] {
		lines = append(lines, line(cells))
	}
	return strings.Join(lines, "\n")
}

// markdownCell flattens cell content onto one line: paragraphs joined by
// <br>, nested tables as inline HTML, pipes escaped.
func markdownCell(c *document.Cell) string {
	var parts []string
	for _, item := range c.Content {
		switch v := item.(type) {
		case *document.Paragraph:
			if v.Text != "" {
				parts = append(parts, v.Text)
			}
		case *document.Table:
			parts = append(parts, htmlTable(v))
		}
	}
	text := strings.Join(parts, "<br>")
	text = strings.ReplaceAll(text, "\n", "<br>")
	return strings.ReplaceAll(text, "|", `\|`)
}

func htmlTable(t *document.Table) string {
	var sb strings.Builder
	sb.WriteString("<table>")
	for _, row := range t.Rows {
		sb.WriteString("<tr>")
		for _, c := range row.Cells {
			sb.WriteString("<td>")
			sb.WriteString(strings.ReplaceAll(markdownCell(c), "<br>", " "))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>")
	return sb.String()
}
