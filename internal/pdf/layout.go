package pdf

import (
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// A baseline further than this many font sizes from the previous one
	// starts a new paragraph.
	paragraphGap = 1.5
	// A horizontal gap wider than this many font sizes is a word break.
	wordGap = 0.25

	defaultFontSize = 10
)

type line struct {
	y, size float64
	text    strings.Builder
}

// paragraphs assembles glyph runs, in content order, into lines by baseline
// and lines into paragraphs by vertical spacing. Whitespace inside a
// paragraph is collapsed.
func paragraphs(texts []pdf.Text) []string {
	var lines []*line
	var cur *line
	var lastEnd float64

	for _, t := range texts {
		size := t.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		if cur == nil || math.Abs(t.Y-cur.y) > size/2 {
			cur = &line{y: t.Y, size: size}
			lines = append(lines, cur)
		} else if t.X-lastEnd > size*wordGap {
			cur.text.WriteByte(' ')
		}
		cur.text.WriteString(t.S)
		lastEnd = t.X + t.W
		cur.size = math.Max(cur.size, size)
	}

	var out []string
	var para []string
	flush := func() {
		if text := strings.Join(strings.Fields(strings.Join(para, " ")), " "); text != "" {
			out = append(out, text)
		}
		para = para[:0]
	}
	for i, l := range lines {
		if i > 0 && math.Abs(lines[i-1].y-l.y) > l.size*paragraphGap {
			flush()
		}
		para = append(para, l.text.String())
	}
	flush()
	return out
}
