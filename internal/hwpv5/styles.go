package hwpv5

import (
	"encoding/binary"

	"github.com/hanpama/hwpmd/internal/outline"
)

// parseStyles builds heading levels from the STYLE records of a DocInfo
// stream. The n-th STYLE record defines style identifier n.
func parseStyles(docInfo []Record) outline.StyleLevels {
	var levels outline.StyleLevels
	for _, rec := range docInfo {
		if rec.Tag != recTagStyle {
			continue
		}
		localName, off := ReadBSTR(rec.Data, 0)
		englishName, _ := ReadBSTR(rec.Data, off)
		levels = append(levels, outline.HeadingLevelOf(localName, englishName))
	}
	return levels
}

// PARA_HEADER layout per the HWP 5.0 format document (4.2.1 문단 헤더):
// text count u32 at 0, control mask u32 at 4, paragraph shape ID u16 at 8,
// style ID u8 at 10.
const paraHeaderStyleOffset = 10

// paraStyleID returns the style identifier of a PARA_HEADER record.
func paraStyleID(data []byte) int {
	if len(data) <= paraHeaderStyleOffset {
		return 0
	}
	return int(data[paraHeaderStyleOffset])
}

// sectionCount reads the declared section count from DOCUMENT_PROPERTIES.
func sectionCount(docInfo []Record) int {
	for _, rec := range docInfo {
		if rec.Tag == recTagDocumentProperties && len(rec.Data) >= 2 {
			return int(binary.LittleEndian.Uint16(rec.Data))
		}
	}
	return 0
}
