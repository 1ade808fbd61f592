package hwpv5

import (
	"strings"

	"go.uber.org/zap"

	"github.com/hanpama/hwpmd/document"
	"github.com/hanpama/hwpmd/internal/outline"
)

// bodyDecoder turns the records of one BodyText section into document
// elements.
type bodyDecoder struct {
	levels outline.StyleLevels
	log    *zap.Logger
}

func newBodyDecoder(levels outline.StyleLevels, log *zap.Logger) *bodyDecoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &bodyDecoder{levels: levels, log: log}
}

// extractElements walks a section's records in order. PARA_HEADER sets the
// heading level for the text that follows; PARA_TEXT becomes a paragraph,
// or a table when it anchors one.
func (d *bodyDecoder) extractElements(recs []Record) []document.Element {
	var elements []document.Element
	c := NewRecordCursor(recs)
	headingLevel := 0

	for {
		rec, ok := c.Advance()
		if !ok {
			break
		}

		switch rec.Tag {
		case recTagParaHeader:
			headingLevel = d.levels.Level(paraStyleID(rec.Data))

		case recTagParaText:
			if HasTableMarker(rec.Data) {
				if t := d.tryParseTable(c, rec.Level); t != nil {
					elements = append(elements, outline.PlaceTable(t)...)
					continue
				}
			}
			if text := strings.TrimSpace(ExtractText(rec.Data)); text != "" {
				elements = append(elements, &document.Paragraph{Text: text, HeadingLevel: headingLevel})
			}
		}
	}
	return elements
}
