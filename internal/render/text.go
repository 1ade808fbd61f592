package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hanpama/hwpmd/document"
)

// TextWriter renders documents as plain text with ASCII tables.
type TextWriter struct{}

func NewTextWriter() *TextWriter { return &TextWriter{} }

func (*TextWriter) FormatName() string    { return "text" }
func (*TextWriter) FileExtension() string { return ".txt" }

func (*TextWriter) Write(w io.Writer, doc *document.Document) error {
	if _, err := io.WriteString(w, Text(doc)); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

// Text renders doc as plain text. Tables are followed by a blank line.
func Text(doc *document.Document) string {
	var sb strings.Builder
	counter := 0
	for _, el := range doc.Elements {
		if item, ok := el.(*document.ListItem); !ok || !item.Ordered {
			counter = 0
		}
		switch v := el.(type) {
		case *document.Paragraph:
			if text := strings.TrimRight(v.Text, "\n"); text != "" {
				sb.WriteString(text)
			}
			sb.WriteString("\n")
		case *document.Table:
			if len(v.Rows) == 0 {
				continue
			}
			sb.WriteString(newGrid(v).String())
			sb.WriteString("\n")
		case *document.ListItem:
			if v.Ordered {
				counter++
			}
			sb.WriteString(listLine(v, counter))
			sb.WriteString("\n")
		case *document.Image:
			if v.AltText != "" {
				fmt.Fprintf(&sb, "[IMAGE: %s]\n", v.AltText)
			} else {
				sb.WriteString("[IMAGE]\n")
			}
		case *document.Link:
			fmt.Fprintf(&sb, "%s <%s>\n", v.Text, v.URL)
		case *document.HorizontalRule:
			sb.WriteString(strings.Repeat("-", 40) + "\n")
		}
	}
	return sb.String()
}

// listLine renders a list item indented two spaces per level, numbered by
// counter when ordered.
func listLine(item *document.ListItem, counter int) string {
	marker := "-"
	if item.Ordered {
		marker = fmt.Sprintf("%d.", counter)
	}
	return strings.Repeat("  ", item.Level) + marker + " " + item.Text
}
