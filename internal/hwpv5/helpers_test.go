package hwpv5

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"unicode/utf16"
)

func header(tag, level uint16, size int) []byte {
	var b []byte
	if size >= recExtendedSize {
		b = binary.LittleEndian.AppendUint32(b, uint32(tag)|uint32(level)<<10|uint32(recExtendedSize)<<20)
		return binary.LittleEndian.AppendUint32(b, uint32(size))
	}
	return binary.LittleEndian.AppendUint32(b, uint32(tag)|uint32(level)<<10|uint32(size)<<20)
}

func rec(tag, level uint16, payload []byte) []byte {
	return append(header(tag, level, len(payload)), payload...)
}

func wchars(s string) []byte {
	var b []byte
	for _, u := range utf16.Encode([]rune(s)) {
		b = binary.LittleEndian.AppendUint16(b, u)
	}
	return b
}

// extended returns a 16-byte extended control character.
func extended(code uint16) []byte {
	b := make([]byte, extendedCharSize)
	binary.LittleEndian.PutUint16(b, code)
	binary.LittleEndian.PutUint16(b[14:], code)
	return b
}

func bstr(s string) []byte {
	u := utf16.Encode([]rune(s))
	b := binary.LittleEndian.AppendUint16(nil, uint16(len(u)))
	for _, c := range u {
		b = binary.LittleEndian.AppendUint16(b, c)
	}
	return b
}

func paraHeader(level uint16, styleID byte) []byte {
	payload := make([]byte, 22)
	payload[paraHeaderStyleOffset] = styleID
	return rec(recTagParaHeader, level, payload)
}

func paraText(level uint16, s string) []byte {
	return rec(recTagParaText, level, wchars(s))
}

// markerText is a PARA_TEXT carrying an inline object marker and text.
func markerText(level uint16, s string) []byte {
	return rec(recTagParaText, level, append(extended(charGsoTable), wchars(s)...))
}

func ctrlHeader(level uint16, id string) []byte {
	payload := binary.LittleEndian.AppendUint32(nil, makeCtrlID(id))
	return rec(recTagCtrlHeader, level, append(payload, make([]byte, 40)...))
}

func tableDef(level uint16, rows, cols uint16) []byte {
	payload := make([]byte, 4)
	payload = binary.LittleEndian.AppendUint16(payload, rows)
	payload = binary.LittleEndian.AppendUint16(payload, cols)
	return rec(recTagTable, level, append(payload, make([]byte, 10)...))
}

func listHeader(level uint16) []byte {
	return rec(recTagListHeader, level, make([]byte, 34))
}

// cell emits one table cell holding a single paragraph.
func cell(ctrlLevel uint16, text string) []byte {
	var b []byte
	b = append(b, listHeader(ctrlLevel+1)...)
	b = append(b, paraHeader(ctrlLevel+1, 0)...)
	b = append(b, paraText(ctrlLevel+2, text)...)
	return b
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func deflate(b []byte) []byte {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	w.Write(b)
	w.Close()
	return buf.Bytes()
}

func fileHeader(props uint32) []byte {
	b := make([]byte, 256)
	copy(b, signatureText)
	binary.LittleEndian.PutUint32(b[32:], 0x05000300)
	binary.LittleEndian.PutUint32(b[36:], props)
	return b
}

func styleRecord(local, english string) []byte {
	payload := concat(bstr(local), bstr(english), make([]byte, 8))
	return rec(recTagStyle, 0, payload)
}
