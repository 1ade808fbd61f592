package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/hanpama/hwpmd/document"
)

// grid is the computed layout of a table drawn as an ASCII box. Cells hold
// one display line per paragraph line; a nested table contributes the lines
// of its own box.
type grid struct {
	cols       int
	cells      [][][]string // cells[row][col] = display lines
	colWidths  []int
	rowHeights []int
}

func newGrid(t *document.Table) *grid {
	g := &grid{cols: t.ColCount()}
	for _, row := range t.Rows {
		lines := make([][]string, g.cols)
		for c := range g.cols {
			if c < len(row.Cells) {
				lines[c] = cellLines(row.Cells[c])
			}
		}
		g.cells = append(g.cells, lines)
	}
	g.computeColWidths()
	g.computeRowHeights()
	return g
}

func cellLines(c *document.Cell) []string {
	var lines []string
	for _, item := range c.Content {
		switch v := item.(type) {
		case *document.Paragraph:
			text := strings.TrimSpace(strings.ReplaceAll(v.Text, "\t", " "))
			if text != "" {
				lines = append(lines, strings.Split(text, "\n")...)
			}
		case *document.Table:
			if len(v.Rows) > 0 {
				lines = append(lines, newGrid(v).lines()...)
			}
		}
	}
	return lines
}

func (g *grid) computeColWidths() {
	g.colWidths = make([]int, g.cols)
	for c := range g.colWidths {
		g.colWidths[c] = 1
	}
	for _, row := range g.cells {
		for c, lines := range row {
			for _, line := range lines {
				g.colWidths[c] = max(g.colWidths[c], displayWidth(line))
			}
		}
	}
}

func (g *grid) computeRowHeights() {
	g.rowHeights = make([]int, len(g.cells))
	for r, row := range g.cells {
		g.rowHeights[r] = 1
		for _, lines := range row {
			g.rowHeights[r] = max(g.rowHeights[r], len(lines))
		}
	}
}

// lines renders the box, one string per display line.
func (g *grid) lines() []string {
	border := g.border()
	out := []string{border}
	for r, height := range g.rowHeights {
		for i := range height {
			out = append(out, g.contentLine(r, i))
		}
		out = append(out, border)
	}
	return out
}

func (g *grid) String() string {
	return strings.Join(g.lines(), "\n") + "\n"
}

func (g *grid) border() string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range g.colWidths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	return sb.String()
}

// contentLine renders display line i of table row r.
func (g *grid) contentLine(r, i int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for c, lines := range g.cells[r] {
		var text string
		if i < len(lines) {
			text = lines[i]
		}
		sb.WriteString(" ")
		sb.WriteString(text)
		sb.WriteString(strings.Repeat(" ", max(g.colWidths[c]-displayWidth(text), 0)))
		sb.WriteString(" |")
	}
	return sb.String()
}

// displayWidth is the terminal width of s; East Asian wide characters count
// as two columns.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-displayWidth(s), 0))
}
