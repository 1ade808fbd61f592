package hwpv5

import "encoding/binary"

// Record header layout: one little-endian uint32 holding
// [tag: 10 bits][level: 10 bits][size: 12 bits] from the least significant
// bit up. A size of 0xfff means the real size follows as a uint32.
const (
	recTagBits   = 10
	recLevelBits = 10

	recTagMask   = 1<<recTagBits - 1
	recLevelMask = 1<<recLevelBits - 1
	recSizeMask  = 1<<12 - 1

	recExtendedSize = recSizeMask
)

const (
	recTagBegin = 0x10

	// DocInfo
	recTagDocumentProperties = recTagBegin + 0
	recTagStyle              = recTagBegin + 10
	recTagDistributeDocData  = recTagBegin + 12

	// BodyText
	recTagParaHeader    = recTagBegin + 50
	recTagParaText      = recTagBegin + 51
	recTagParaCharShape = recTagBegin + 52
	recTagParaLineSeg   = recTagBegin + 53
	recTagCtrlHeader    = recTagBegin + 55
	recTagListHeader    = recTagBegin + 56
	recTagTable         = recTagBegin + 61
)

// ctrlIDTable identifies a table control: the bytes "tbl " read as a
// big-endian uint32. Control headers store it little-endian, byte-reversed.
var ctrlIDTable = makeCtrlID("tbl ")

func makeCtrlID(s string) uint32 {
	return binary.BigEndian.Uint32([]byte(s))
}

// Record is one decoded record of a DocInfo or BodyText stream.
type Record struct {
	Tag   uint16
	Level uint16
	Data  []byte
}

// CtrlID returns the control type identifier of a CTRL_HEADER record, or 0
// when the payload is too short.
func (r Record) CtrlID() uint32 {
	if len(r.Data) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(r.Data)
}

// ParseRecords decodes a record stream. Decoding stops quietly at the first
// truncated header, extended size or payload; the records decoded up to that
// point are returned. Payloads alias data.
func ParseRecords(data []byte) []Record {
	var recs []Record
	off := 0
	for off+4 <= len(data) {
		header := binary.LittleEndian.Uint32(data[off:])
		off += 4

		tag := uint16(header & recTagMask)
		level := uint16((header >> recTagBits) & recLevelMask)
		size := int64((header >> (recTagBits + recLevelBits)) & recSizeMask)

		if size == recExtendedSize {
			if off+4 > len(data) {
				break
			}
			size = int64(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}

		if int64(off)+size > int64(len(data)) {
			break
		}
		end := off + int(size)
		recs = append(recs, Record{Tag: tag, Level: level, Data: data[off:end:end]})
		off = end
	}
	return recs
}
