package hwpv5

import (
	"encoding/binary"
	"iter"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

// Character codes below 32 that PARA_TEXT uses for controls.
const (
	charSectionColDef uint16 = 2  // 구역 정의/단 정의
	charFieldStart    uint16 = 3  // 필드 시작
	charFieldEnd      uint16 = 4  // 필드 끝
	charTitleMark     uint16 = 8  // 제목 차례 표시
	charTab           uint16 = 9  // 탭
	charLineBreak     uint16 = 10 // 한 줄 끝
	charGsoTable      uint16 = 11 // 그리기 개체/표
	charParaBreak     uint16 = 13 // 문단 끝
	charHiddenComment uint16 = 15 // 숨은 설명
	charHeaderFooter  uint16 = 16 // 머리말/꼬리말
	charFootnote      uint16 = 17 // 각주/미주
	charAutoNumber    uint16 = 18 // 자동번호
	charPageControl   uint16 = 21 // 쪽 번호 위치 등
	charBookmark      uint16 = 22 // 책갈피/찾아보기 표식
	charOverlap       uint16 = 23 // 덧말/글자 겹침

	charPrintable uint16 = 32
)

// Extended controls occupy 8 WCHARs: the code, 12 bytes of parameters and
// the code again.
const (
	extendedCharSize = 16
	normalCharSize   = 2
)

// isExtendedChar reports whether code is an extended control:
// 0-8, 11, 12 and 14-23.
func isExtendedChar(code uint16) bool {
	switch {
	case code <= 8:
		return true
	case code == 11, code == 12:
		return true
	case code >= 14 && code <= 23:
		return true
	}
	return false
}

// CharInfo describes one character of a PARA_TEXT payload.
type CharInfo struct {
	Code   uint16
	Offset int // byte offset in the payload
	Size   int // bytes consumed, 2 or 16
}

// ScanChars yields the characters of a PARA_TEXT payload. A trailing odd
// byte is ignored.
func ScanChars(data []byte) iter.Seq[CharInfo] {
	return func(yield func(CharInfo) bool) {
		off := 0
		for off+1 < len(data) {
			code := binary.LittleEndian.Uint16(data[off:])
			size := normalCharSize
			if isExtendedChar(code) {
				size = extendedCharSize
			}
			if !yield(CharInfo{Code: code, Offset: off, Size: size}) {
				return
			}
			off += size
		}
	}
}

// ExtractText returns the readable text of a PARA_TEXT payload. Tabs and
// line breaks are kept; other controls are dropped. Surrogate pairs are
// combined.
func ExtractText(data []byte) string {
	units := make([]uint16, 0, len(data)/2)
	for ch := range ScanChars(data) {
		if ch.Code == charTab || ch.Code == charLineBreak || ch.Code >= charPrintable {
			units = append(units, ch.Code)
		}
	}
	return string(utf16.Decode(units))
}

// HasTableMarker reports whether the payload contains an inline object
// (table or drawing) marker.
func HasTableMarker(data []byte) bool {
	for ch := range ScanChars(data) {
		if ch.Code == charGsoTable {
			return true
		}
	}
	return false
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeUTF16 decodes UTF-16LE, replacing invalid sequences with U+FFFD.
func decodeUTF16(b []byte) string {
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

// ReadBSTR reads a WCHAR count followed by that many UTF-16LE code units
// starting at off. It returns the string and the offset just past it; when
// data is too short it returns "" and off unchanged.
func ReadBSTR(data []byte, off int) (string, int) {
	if off < 0 || off+2 > len(data) {
		return "", off
	}
	n := int(binary.LittleEndian.Uint16(data[off:]))
	start := off + 2
	end := start + n*2
	if end > len(data) {
		return "", off
	}
	return decodeUTF16(data[start:end]), end
}
