// Package pdf extracts plain paragraphs from PDF files. Layout beyond line
// and paragraph breaks is not recovered.
package pdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/hanpama/hwpmd/document"
)

// SourceFormat tags documents produced by this package.
const SourceFormat = "pdf"

// Parser reads .pdf files into documents.
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

func (p *Parser) Extensions() []string { return []string{".pdf"} }

// Parse reads the PDF at path. Pages whose content cannot be decoded are
// skipped.
func (p *Parser) Parse(path string) (doc *document.Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", document.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	// The reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: read PDF %s: %v", document.ErrInvalidContainer, path, r)
		}
	}()

	reader, err := pdf.NewReader(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: read PDF %s: %w", document.ErrInvalidContainer, path, err)
	}

	doc = document.New(SourceFormat)
	readInfo(reader, &doc.Metadata)
	if doc.Metadata.Title == "" {
		doc.Metadata.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	pages := reader.NumPage()
	doc.Metadata.Extra["pages"] = strconv.Itoa(pages)
	for i := 1; i <= pages; i++ {
		texts, ok := p.pageText(reader, i)
		if !ok {
			continue
		}
		for _, para := range paragraphs(texts) {
			doc.Append(&document.Paragraph{Text: para})
		}
	}
	return doc, nil
}

func (p *Parser) pageText(reader *pdf.Reader, n int) (texts []pdf.Text, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("page skipped", zap.Int("page", n), zap.Any("panic", r))
			texts, ok = nil, false
		}
	}()

	page := reader.Page(n)
	if page.V.IsNull() {
		return nil, false
	}
	return page.Content().Text, true
}

// readInfo copies the document information dictionary.
func readInfo(reader *pdf.Reader, md *document.Metadata) {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return
	}
	md.Title = strings.TrimSpace(info.Key("Title").Text())
	md.Author = strings.TrimSpace(info.Key("Author").Text())
	for _, key := range []string{"Subject", "Producer", "Creator"} {
		if v := strings.TrimSpace(info.Key(key).Text()); v != "" {
			md.Extra[strings.ToLower(key)] = v
		}
	}
}
