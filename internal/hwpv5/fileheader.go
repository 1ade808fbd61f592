package hwpv5

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	signatureText  = "HWP Document File"
	fileHeaderSize = 40 // signature, version, properties
)

// Version stores the four-part HWP version number (MM.nn.PP.rr).
type Version struct {
	Major byte
	Minor byte
	Patch byte
	Rev   byte
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Rev)
}

// FileProperties exposes the property flags of the FileHeader stream. Bit 0
// of byte 36 is the compression flag.
type FileProperties struct {
	Raw uint32
}

func (p FileProperties) Compressed() bool   { return p.Raw&0x1 != 0 }
func (p FileProperties) Encrypted() bool    { return p.Raw&0x2 != 0 }
func (p FileProperties) Distribution() bool { return p.Raw&0x4 != 0 }

// FileHeader holds the leading fields of the 256-byte FileHeader stream.
type FileHeader struct {
	Signature  string
	Version    Version
	Properties FileProperties
}

// KnownSignature reports whether the header carries the standard HWP
// signature. Files written by third-party tools sometimes leave it blank.
func (h FileHeader) KnownSignature() bool {
	return h.Signature == signatureText
}

// parseFileHeader reads the version and property flags. Only a header too
// short to hold the property flags is an error.
func parseFileHeader(b []byte) (FileHeader, error) {
	var hdr FileHeader
	if len(b) < fileHeaderSize {
		return hdr, fmt.Errorf("file header too short: %d bytes", len(b))
	}

	hdr.Signature = string(bytes.TrimRight(b[:32], "\x00"))

	ver := binary.LittleEndian.Uint32(b[32:])
	hdr.Version = Version{
		Major: byte(ver >> 24),
		Minor: byte(ver >> 16),
		Patch: byte(ver >> 8),
		Rev:   byte(ver),
	}
	hdr.Properties.Raw = binary.LittleEndian.Uint32(b[36:])
	return hdr, nil
}
