// Package hwpv5 decodes the binary HWP 5.0 format: an OLE2 compound file
// whose DocInfo and BodyText/SectionN streams hold (optionally raw-deflated)
// record streams.
package hwpv5

import (
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hanpama/hwpmd/document"
	"github.com/hanpama/hwpmd/internal/outline"
)

// SourceFormat tags documents produced by this package.
const SourceFormat = "hwp"

// Parser reads .hwp files into documents.
type Parser struct {
	log *zap.Logger
}

// NewParser returns a Parser logging to log; nil disables logging.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

func (p *Parser) Extensions() []string { return []string{".hwp"} }

// Parse reads the compound file at path.
func (p *Parser) Parse(path string) (*document.Document, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", document.ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	c, err := openOLE(path)
	if err != nil {
		return nil, fmt.Errorf("open HWP file %s: %w", path, err)
	}
	return p.ParseContainer(c)
}

// ParseContainer decodes an already opened compound file.
func (p *Parser) ParseContainer(c Container) (*document.Document, error) {
	raw, err := c.Stream(streamFileHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", document.ErrInvalidContainer, err)
	}
	hdr, err := parseFileHeader(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", document.ErrInvalidContainer, err)
	}
	if !hdr.KnownSignature() {
		p.log.Warn("unexpected file header signature, decoding anyway",
			zap.String("signature", hdr.Signature))
	}
	if hdr.Properties.Encrypted() {
		return nil, fmt.Errorf("%w: password encrypted documents are not supported", document.ErrInvalidContainer)
	}

	doc := document.New(SourceFormat)
	doc.Metadata.Extra["version"] = hdr.Version.String()

	if c.Exists(streamSummaryInfo) {
		if data, err := c.Stream(streamSummaryInfo); err == nil {
			if err := readSummary(data, &doc.Metadata); err != nil {
				p.log.Debug("summary information skipped", zap.Error(err))
			}
		}
	}

	levels := p.readStyles(c, hdr)
	dec := newBodyDecoder(levels, p.log)

	for i := 0; ; i++ {
		name := bodyTextStream(i)
		if hdr.Properties.Distribution() {
			name = viewTextStream(i)
		}
		if !c.Exists(name) {
			break
		}

		data, err := p.readSection(c, name, hdr)
		if err != nil {
			p.log.Warn("section skipped", zap.String("stream", name), zap.Error(err))
			continue
		}
		recs := ParseRecords(data)
		p.log.Debug("section decoded", zap.String("stream", name), zap.Int("records", len(recs)))
		doc.Append(dec.extractElements(recs)...)
	}

	if len(doc.Elements) == 0 && c.Exists(streamPrvText) {
		if data, err := c.Stream(streamPrvText); err == nil {
			p.log.Info("no body text recovered, using preview text")
			doc.Append(previewParagraphs(data)...)
		}
	}

	return doc, nil
}

// readStyles builds the style table from DocInfo. A missing or unreadable
// DocInfo leaves every paragraph at body level.
func (p *Parser) readStyles(c Container, hdr FileHeader) outline.StyleLevels {
	if !c.Exists(streamDocInfo) {
		return nil
	}
	raw, err := c.Stream(streamDocInfo)
	if err != nil {
		return nil
	}
	if hdr.Properties.Compressed() {
		var ierr error
		raw, ierr = inflate(raw)
		if ierr != nil {
			p.log.Warn("DocInfo decompression incomplete", zap.Error(ierr))
		}
	}
	recs := ParseRecords(raw)
	p.log.Debug("document properties", zap.Int("declaredSections", sectionCount(recs)))
	return parseStyles(recs)
}

// readSection returns the plain record stream of a section, decrypting and
// inflating as the header demands. Partially inflated data is kept.
func (p *Parser) readSection(c Container, name string, hdr FileHeader) ([]byte, error) {
	data, err := c.Stream(name)
	if err != nil {
		return nil, err
	}
	if hdr.Properties.Distribution() {
		data, err = decryptDistribution(data)
		if err != nil {
			return nil, err
		}
	}
	if hdr.Properties.Compressed() {
		var ierr error
		data, ierr = inflate(data)
		if ierr != nil {
			p.log.Warn("section decompression incomplete",
				zap.String("stream", name), zap.Int("bytes", len(data)), zap.Error(ierr))
		}
	}
	return data, nil
}

// inflate decompresses raw deflate data (no zlib header). On error the
// bytes produced so far are returned with it.
func inflate(raw []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	return io.ReadAll(r)
}

// previewParagraphs splits the UTF-16LE PrvText stream into paragraphs.
func previewParagraphs(data []byte) []document.Element {
	var out []document.Element
	for _, line := range strings.Split(decodeUTF16(data), "\r\n") {
		if text := strings.TrimSpace(line); text != "" {
			out = append(out, &document.Paragraph{Text: text})
		}
	}
	return out
}
